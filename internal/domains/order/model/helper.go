package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// =====================================================
// CALCULATION HELPERS
// =====================================================

// CalculateSubtotal = Σ unit_price × quantity
func CalculateSubtotal(items []CreateOrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// CalculateTotal - total không bao giờ âm
func CalculateTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// FormatOrderNumber: ORD-YYYYMMDD-XXXXXXXX (ngày theo UTC)
func FormatOrderNumber(now time.Time, suffix string) string {
	return "ORD-" + now.UTC().Format("20060102") + "-" + suffix
}
