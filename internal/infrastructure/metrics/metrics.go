package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels cho promo redemption
const (
	OutcomeRedeemed     = "redeemed"
	OutcomeInvalid      = "invalid"
	OutcomeInactive     = "inactive"
	OutcomeExpired      = "expired"
	OutcomeLimitReached = "limit_reached"
	OutcomeError        = "error"
)

// CheckoutMetrics gom các metric của checkout / promo / commission
type CheckoutMetrics struct {
	PromoRedemptionsTotal *prometheus.CounterVec
	OrdersCreatedTotal    *prometheus.CounterVec
	DiscountAmountTotal   prometheus.Counter
	CommissionsTotal      *prometheus.CounterVec
	CommissionAmountTotal prometheus.Counter
	ReportCacheTotal      *prometheus.CounterVec
}

// NewCheckoutMetrics tạo và register metric vào registerer được truyền vào
// Mỗi registry chỉ gọi một lần, test dùng prometheus.NewRegistry()
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	m := &CheckoutMetrics{
		PromoRedemptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_redemptions_total",
				Help: "Promo code redemption attempts by outcome",
			},
			[]string{"outcome"},
		),
		OrdersCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Orders created by attribution source",
			},
			[]string{"source", "payment_method"},
		),
		DiscountAmountTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_discount_amount_total",
				Help: "Sum of discounts granted on created orders",
			},
		),
		CommissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_created_total",
				Help: "Commission ledger entries created",
			},
			[]string{"source"},
		),
		CommissionAmountTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "commissions_amount_total",
				Help: "Sum of commission amounts recorded",
			},
		),
		ReportCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "influencer_report_cache_total",
				Help: "Influencer performance report cache lookups",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.PromoRedemptionsTotal,
		m.OrdersCreatedTotal,
		m.DiscountAmountTotal,
		m.CommissionsTotal,
		m.CommissionAmountTotal,
		m.ReportCacheTotal,
	)

	return m
}

// RecordRedemption tăng counter theo outcome
func (m *CheckoutMetrics) RecordRedemption(outcome string) {
	if m == nil {
		return
	}
	m.PromoRedemptionsTotal.WithLabelValues(outcome).Inc()
}

func (m *CheckoutMetrics) RecordOrder(source, paymentMethod string, discount float64) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(source, paymentMethod).Inc()
	if discount > 0 {
		m.DiscountAmountTotal.Add(discount)
	}
}

func (m *CheckoutMetrics) RecordCommission(source string, amount float64) {
	if m == nil {
		return
	}
	m.CommissionsTotal.WithLabelValues(source).Inc()
	if amount > 0 {
		m.CommissionAmountTotal.Add(amount)
	}
}

func (m *CheckoutMetrics) RecordReportCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCacheTotal.WithLabelValues(result).Inc()
}
