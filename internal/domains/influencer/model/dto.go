package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var promoCodePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// NormalizeCode: trim + uppercase, dùng cho mọi đường vào của promo code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// -------------------------------------------------------------------
// INFLUENCER REQUESTS
// -------------------------------------------------------------------

// CreateInfluencerRequest - Request tạo influencer mới
type CreateInfluencerRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	CommissionType  string  `json:"commission_type"`
	CommissionValue float64 `json:"commission_value"`
	Status          string  `json:"status"`
}

func (r CreateInfluencerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat, validation.Length(3, 255)),
		validation.Field(&r.CommissionType,
			validation.Required,
			validation.In(AmountTypePercentage, AmountTypeFixed).Error("must be 'percentage' or 'fixed'"),
		),
		validation.Field(&r.CommissionValue,
			validation.Min(0.0),
			validation.By(percentageCap(r.CommissionType)),
		),
		validation.Field(&r.Status,
			validation.In(InfluencerStatusActive, InfluencerStatusInactive),
		),
	)
}

// UpdateInfluencerRequest - partial update, field nil = giữ nguyên
type UpdateInfluencerRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	CommissionType  *string  `json:"commission_type"`
	CommissionValue *float64 `json:"commission_value"`
}

func (r UpdateInfluencerRequest) Validate() error {
	commissionType := ""
	if r.CommissionType != nil {
		commissionType = *r.CommissionType
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.CommissionType,
			validation.NilOrNotEmpty,
			validation.In(AmountTypePercentage, AmountTypeFixed).Error("must be 'percentage' or 'fixed'"),
		),
		validation.Field(&r.CommissionValue,
			validation.Min(0.0),
			validation.By(percentageCap(commissionType)),
		),
	)
}

// UpdateInfluencerStatusRequest - admin toggle active/inactive
type UpdateInfluencerStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateInfluencerStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(InfluencerStatusActive, InfluencerStatusInactive),
		),
	)
}

// -------------------------------------------------------------------
// PROMO CODE REQUESTS
// -------------------------------------------------------------------

// CreatePromoCodeRequest - Code để trống thì service tự sinh
type CreatePromoCodeRequest struct {
	Code          string  `json:"code"`
	InfluencerID  string  `json:"influencer_id"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	UsageLimit    *int    `json:"usage_limit"`
	ExpiresAt     *string `json:"expires_at"` // RFC3339
	Active        *bool   `json:"active"`
}

func (r CreatePromoCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Length(3, 50),
			validation.Match(promoCodePattern).Error("may only contain A-Z, 0-9, '-' and '_'"),
		),
		validation.Field(&r.InfluencerID, validation.Required, is.UUID),
		validation.Field(&r.DiscountType,
			validation.Required,
			validation.In(AmountTypePercentage, AmountTypeFixed).Error("must be 'percentage' or 'fixed'"),
		),
		validation.Field(&r.DiscountValue,
			validation.Required,
			validation.Min(0.01),
			validation.By(percentageCap(r.DiscountType)),
		),
		validation.Field(&r.UsageLimit, validation.When(r.UsageLimit != nil, validation.Min(1))),
		validation.Field(&r.ExpiresAt, validation.NilOrNotEmpty, validation.Date(time.RFC3339)),
	)
}

// NormalizeCode chuyển code về uppercase
func (r *CreatePromoCodeRequest) NormalizeCode() {
	r.Code = NormalizeCode(r.Code)
}

// ParsedExpiresAt - gọi sau Validate nên format đã hợp lệ
func (r CreatePromoCodeRequest) ParsedExpiresAt() *time.Time {
	return parseOptionalTime(r.ExpiresAt)
}

// UpdatePromoCodeRequest - code và influencer không đổi được sau khi tạo
type UpdatePromoCodeRequest struct {
	DiscountType    *string  `json:"discount_type"`
	DiscountValue   *float64 `json:"discount_value"`
	UsageLimit      *int     `json:"usage_limit"`
	ClearUsageLimit bool     `json:"clear_usage_limit"`
	ExpiresAt       *string  `json:"expires_at"`
	ClearExpiresAt  bool     `json:"clear_expires_at"`
	Active          *bool    `json:"active"`
}

func (r UpdatePromoCodeRequest) Validate() error {
	discountType := ""
	if r.DiscountType != nil {
		discountType = *r.DiscountType
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.DiscountType,
			validation.NilOrNotEmpty,
			validation.In(AmountTypePercentage, AmountTypeFixed).Error("must be 'percentage' or 'fixed'"),
		),
		validation.Field(&r.DiscountValue,
			validation.When(r.DiscountValue != nil, validation.Min(0.01)),
			validation.By(percentageCap(discountType)),
		),
		validation.Field(&r.UsageLimit, validation.When(r.UsageLimit != nil, validation.Min(1))),
		validation.Field(&r.ExpiresAt, validation.NilOrNotEmpty, validation.Date(time.RFC3339)),
	)
}

func (r UpdatePromoCodeRequest) ParsedExpiresAt() *time.Time {
	return parseOptionalTime(r.ExpiresAt)
}

// ListPromoCodesFilter - Filter cho admin list
type ListPromoCodesFilter struct {
	InfluencerID string `form:"influencer_id"`
	Active       *bool  `form:"active"`
}

func (f ListPromoCodesFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.InfluencerID, is.UUID),
	)
}

// PromoPreviewResponse - kết quả check promo code ở checkout form, không consume
type PromoPreviewResponse struct {
	Code           string `json:"code"`
	DiscountType   string `json:"discount_type"`
	DiscountValue  string `json:"discount_value"`
	DiscountAmount string `json:"discount_amount"`
	NetTotal       string `json:"net_total"`
}

// -------------------------------------------------------------------
// COMMISSION REQUESTS
// -------------------------------------------------------------------

// UpdateCommissionStatusRequest - pending không phải target hợp lệ
type UpdateCommissionStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateCommissionStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(CommissionStatusApproved, CommissionStatusPaid),
		),
	)
}

// ListCommissionsFilter - Filter cho admin list commissions
type ListCommissionsFilter struct {
	InfluencerID string `form:"influencer_id"`
	Status       string `form:"status"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

func (f ListCommissionsFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.InfluencerID, is.UUID),
		validation.Field(&f.Status,
			validation.In(CommissionStatusPending, CommissionStatusApproved, CommissionStatusPaid),
		),
		validation.Field(&f.Page, validation.Min(0)),
		validation.Field(&f.Limit, validation.Min(0), validation.Max(200)),
	)
}

// Normalize set default page/limit
func (f *ListCommissionsFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
}

// -------------------------------------------------------------------
// REPORT
// -------------------------------------------------------------------

// PerformanceFilter - From/To là chuỗi ISO, rỗng hoặc parse lỗi = không giới hạn phía đó
type PerformanceFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Bounds parse From/To; bound không hợp lệ trả về nil thay vì lỗi
func (f PerformanceFilter) Bounds() (from, to *time.Time) {
	return parseReportDate(f.From), parseReportDate(f.To)
}

var reportDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseReportDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

// percentageCap: giá trị percentage không được vượt 100
func percentageCap(amountType string) validation.RuleFunc {
	return func(value interface{}) error {
		if amountType != AmountTypePercentage {
			return nil
		}

		var v float64
		switch x := value.(type) {
		case float64:
			v = x
		case *float64:
			if x == nil {
				return nil
			}
			v = *x
		default:
			return nil
		}

		if v > 100 {
			return errors.New("percentage value cannot exceed 100")
		}
		return nil
	}
}

func parseOptionalTime(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil
	}
	return &t
}
