package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/influencer/model"
)

var hundred = decimal.NewFromInt(100)

// ToMoney clamp về >= 0 và format đúng 2 chữ số thập phân
// VD: 10 → "10.00", -3 → "0.00", 4.005 → "4.01"
func ToMoney(value decimal.Decimal) string {
	if value.IsNegative() {
		value = decimal.Zero
	}
	return value.StringFixed(2)
}

// ToNumber parse money string, chuỗi rỗng hoặc lỗi → 0
func ToNumber(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CalculateDiscount - chưa clamp, caller tự giới hạn theo subtotal
//
//   - percentage: subtotal × value / 100
//   - fixed: value
func CalculateDiscount(subtotal decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	return applyRate(subtotal, discountType, value)
}

// CalculateCommission cùng công thức với discount nhưng base là net total
func CalculateCommission(netTotal decimal.Decimal, commissionType string, value decimal.Decimal) decimal.Decimal {
	return applyRate(netTotal, commissionType, value)
}

func applyRate(base decimal.Decimal, amountType string, value decimal.Decimal) decimal.Decimal {
	switch amountType {
	case model.AmountTypePercentage:
		return base.Mul(value).Div(hundred)
	case model.AmountTypeFixed:
		return value
	default:
		return decimal.Zero
	}
}

// clampDiscount = min(subtotal, max(0, discount))
func clampDiscount(discount, subtotal decimal.Decimal) decimal.Decimal {
	return decimal.Min(subtotal, nonNegative(discount))
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
