package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// =====================================================
// PAYMENT METHOD CONSTANTS
// =====================================================
const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPayPal = "paypal"
	PaymentMethodCOD    = "cod"
)

// =====================================================
// ATTRIBUTION SOURCE (metrics label)
// =====================================================
const (
	SourcePromoCode = "promo_code"
	SourceReferral  = "referral"
	SourceNone      = "none"
)

// =====================================================
// ENTITY: Order
// =====================================================
type Order struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerName   string          `json:"customer_name"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	PromoCodeID    *uuid.UUID      `json:"promo_code_id,omitempty"`
	PromoCode      *string         `json:"promo_code,omitempty"`
	InfluencerID   *uuid.UUID      `json:"influencer_id,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// Source - order được attribute qua promo code, referral hay không có
func (o *Order) Source() string {
	switch {
	case o.PromoCodeID != nil:
		return SourcePromoCode
	case o.InfluencerID != nil:
		return SourceReferral
	default:
		return SourceNone
	}
}

// =====================================================
// ENTITY: OrderItem
// =====================================================
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal = unit_price × quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
