package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/domains/influencer/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToMoney(t *testing.T) {
	cases := map[string]string{
		"10":     "10.00",
		"4.005":  "4.01",
		"4.004":  "4.00",
		"-3":     "0.00",
		"0":      "0.00",
		"99.999": "100.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToMoney(d(in)), "ToMoney(%s)", in)
	}
}

func TestToNumber(t *testing.T) {
	assert.True(t, ToNumber("").IsZero())
	assert.True(t, ToNumber("abc").IsZero())
	assert.True(t, ToNumber(" 12.50 ").Equal(d("12.5")))
}

func TestCalculateDiscount(t *testing.T) {
	assert.True(t, CalculateDiscount(d("100"), model.AmountTypePercentage, d("10")).Equal(d("10")))
	assert.True(t, CalculateDiscount(d("100"), model.AmountTypeFixed, d("7.5")).Equal(d("7.5")))
	assert.True(t, CalculateDiscount(d("100"), "bogus", d("7.5")).IsZero())
}

func TestClampDiscount(t *testing.T) {
	// fixed lớn hơn subtotal → discount = subtotal
	subtotal := d("20.00")
	discount := clampDiscount(CalculateDiscount(subtotal, model.AmountTypeFixed, d("25.00")), subtotal)
	assert.Equal(t, "20.00", ToMoney(discount))
	assert.Equal(t, "0.00", ToMoney(subtotal.Sub(discount)))

	assert.True(t, clampDiscount(d("-5"), subtotal).IsZero())
	assert.True(t, clampDiscount(d("5"), subtotal).Equal(d("5")))
}

func TestCalculateCommission_OnNetTotal(t *testing.T) {
	cases := []struct {
		subtotal, discountPct, commissionPct, want string
	}{
		{"100.00", "10", "10", "9.00"},
		{"59.99", "15", "12.5", "6.37"},
		{"10.00", "100", "50", "0.00"},
		{"33.33", "33", "7", "1.56"},
	}
	for _, c := range cases {
		subtotal := d(c.subtotal)
		discount := clampDiscount(CalculateDiscount(subtotal, model.AmountTypePercentage, d(c.discountPct)), subtotal)
		commission := CalculateCommission(subtotal.Sub(discount), model.AmountTypePercentage, d(c.commissionPct))

		expected := subtotal.
			Mul(decimal.NewFromInt(1).Sub(d(c.discountPct).Div(hundred))).
			Mul(d(c.commissionPct).Div(hundred))

		assert.Equal(t, c.want, ToMoney(commission))
		assert.Equal(t, expected.StringFixed(2), ToMoney(commission))
	}
}
