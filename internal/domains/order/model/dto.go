package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	influencer "storefront-backend/internal/domains/influencer/model"
)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================

// CreateOrderRequest - guest checkout, items gửi kèm request
// unit_price nhận cả number lẫn string ("19.99")
type CreateOrderRequest struct {
	CustomerEmail   string            `json:"customer_email"`
	CustomerName    string            `json:"customer_name"`
	PaymentMethod   string            `json:"payment_method"`
	PromoCode       string            `json:"promo_code,omitempty"`
	RefCode         string            `json:"ref_code,omitempty"`
	RefInfluencerID string            `json:"ref_influencer_id,omitempty"`
	Items           []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Validate validates CreateOrderRequest
func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.CustomerEmail, validation.Required, is.EmailFormat),
		validation.Field(&req.CustomerName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(
			PaymentMethodStripe,
			PaymentMethodPayPal,
			PaymentMethodCOD,
		)),
		validation.Field(&req.PromoCode, validation.Length(0, 50)),
		validation.Field(&req.Items, validation.Required, validation.Length(1, 100)),
	)
}

func (i CreateOrderItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProductName, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.UnitPrice, validation.By(positiveMoney)),
		validation.Field(&i.Quantity, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

// Referral build từ ref_influencer_id, nil khi không có hoặc sai format
func (req CreateOrderRequest) Referral() *influencer.Referral {
	if req.RefInfluencerID == "" {
		return nil
	}
	// ref sai format coi như không có referral, không chặn checkout
	id, err := uuid.Parse(req.RefInfluencerID)
	if err != nil {
		return nil
	}
	return &influencer.Referral{
		RefCode:         req.RefCode,
		RefInfluencerID: &id,
	}
}

func positiveMoney(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal amount")
	}
	if !d.IsPositive() {
		return errors.New("must be greater than 0")
	}
	if d.Exponent() < -2 {
		return errors.New("must have at most 2 decimal places")
	}
	return nil
}

// =====================================================
// CREATE ORDER RESPONSE
// =====================================================

// CreateOrderResponse - money là string 2 chữ số thập phân
type CreateOrderResponse struct {
	OrderID          uuid.UUID  `json:"order_id"`
	OrderNumber      string     `json:"order_number"`
	Status           string     `json:"status"`
	Subtotal         string     `json:"subtotal"`
	DiscountAmount   string     `json:"discount_amount"`
	Total            string     `json:"total"`
	PromoCodeApplied *string    `json:"promo_code_applied"`
	InfluencerID     *uuid.UUID `json:"influencer_id"`
	CommissionID     *uuid.UUID `json:"commission_id,omitempty"`
	CommissionAmount string     `json:"commission_amount"`
}
