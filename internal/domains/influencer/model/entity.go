package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loại discount / commission dùng chung một tập giá trị
const (
	AmountTypePercentage = "percentage"
	AmountTypeFixed      = "fixed"
)

// Influencer status
const (
	InfluencerStatusActive   = "active"
	InfluencerStatusInactive = "inactive"
)

// Commission status
const (
	CommissionStatusPending  = "pending"
	CommissionStatusApproved = "approved"
	CommissionStatusPaid     = "paid"
)

// Influencer là referral partner, sở hữu 0..n promo codes
type Influencer struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Email           string          `json:"email" db:"email"`
	CommissionType  string          `json:"commission_type" db:"commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value" db:"commission_value"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// IsActive - commission chỉ được tính khi influencer active tại thời điểm order
func (i *Influencer) IsActive() bool {
	return i.Status == InfluencerStatusActive
}

// PromoCode là mã giảm giá gắn với đúng một influencer
//
// UsageCount chỉ được tăng qua conditional UPDATE lúc checkout, không bao giờ giảm.
// Retire bằng cách set Active = false, không xóa.
type PromoCode struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	InfluencerID  uuid.UUID       `json:"influencer_id" db:"influencer_id"`
	DiscountType  string          `json:"discount_type" db:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value" db:"discount_value"`
	UsageLimit    *int            `json:"usage_limit,omitempty" db:"usage_limit"`
	UsageCount    int             `json:"usage_count" db:"usage_count"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
	Active        bool            `json:"active" db:"active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// IsExpired - boundary exclusive: expires_at == now đã tính là hết hạn
func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}

// IsUsageLimitReached kiểm tra tại thời điểm đọc, không thay thế conditional UPDATE
func (p *PromoCode) IsUsageLimitReached() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}

// PromoCodeWithInfluencer là kết quả của một lần đọc promo code JOIN influencer
type PromoCodeWithInfluencer struct {
	PromoCode
	InfluencerStatus          string          `json:"influencer_status"`
	InfluencerCommissionType  string          `json:"influencer_commission_type"`
	InfluencerCommissionValue decimal.Decimal `json:"influencer_commission_value"`
}

// Commission là ledger entry: tiền nợ influencer cho một order
type Commission struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	InfluencerID     uuid.UUID       `json:"influencer_id" db:"influencer_id"`
	OrderID          uuid.UUID       `json:"order_id" db:"order_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount" db:"commission_amount"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo: pending → approved | paid, approved → paid
func (c *Commission) CanTransitionTo(next string) bool {
	switch c.Status {
	case CommissionStatusPending:
		return next == CommissionStatusApproved || next == CommissionStatusPaid
	case CommissionStatusApproved:
		return next == CommissionStatusPaid
	}
	return false
}

// PromoResolution là output transient của resolver, không persist riêng
// Money fields là string 2 chữ số thập phân
type PromoResolution struct {
	PromoCodeID      *uuid.UUID `json:"promo_code_id"`
	InfluencerID     *uuid.UUID `json:"influencer_id"`
	DiscountAmount   string     `json:"discount_amount"`
	CommissionAmount string     `json:"commission_amount"`
	PromoCodeApplied *string    `json:"promo_code_applied"`
}

// Referral được resolve từ ?ref= trước khi vào checkout
type Referral struct {
	RefCode         string     `json:"ref_code,omitempty"`
	RefInfluencerID *uuid.UUID `json:"ref_influencer_id,omitempty"`
}

// InfluencerPerformance là một dòng của admin performance report
// Money fields là numeric text từ Postgres, "0" khi không có dữ liệu
type InfluencerPerformance struct {
	InfluencerID      uuid.UUID `json:"influencer_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Status            string    `json:"status"`
	TotalOrders       int       `json:"total_orders"`
	TotalRevenue      string    `json:"total_revenue"`
	TotalDiscount     string    `json:"total_discount"`
	PendingCommission string    `json:"pending_commission"`
	PaidCommission    string    `json:"paid_commission"`
}
