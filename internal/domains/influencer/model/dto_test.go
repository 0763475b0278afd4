package model

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10\t"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestCreateInfluencerRequest_Validate(t *testing.T) {
	valid := CreateInfluencerRequest{
		Name:            "Linh",
		Email:           "linh@example.com",
		CommissionType:  AmountTypePercentage,
		CommissionValue: 15,
	}
	require.NoError(t, valid.Validate())

	tooHigh := valid
	tooHigh.CommissionValue = 101
	err := tooHigh.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "commission_value")

	fixedHigh := valid
	fixedHigh.CommissionType = AmountTypeFixed
	fixedHigh.CommissionValue = 150
	assert.NoError(t, fixedHigh.Validate())

	badType := valid
	badType.CommissionType = "tiered"
	assert.Error(t, badType.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())
}

func TestCreatePromoCodeRequest_Validate(t *testing.T) {
	valid := CreatePromoCodeRequest{
		InfluencerID:  uuid.NewString(),
		DiscountType:  AmountTypeFixed,
		DiscountValue: 5,
	}
	require.NoError(t, valid.Validate())

	withCode := valid
	withCode.Code = "SUMMER_24"
	assert.NoError(t, withCode.Validate())

	badCode := valid
	badCode.Code = "SUMMER 24!"
	assert.Error(t, badCode.Validate())

	zeroLimit := valid
	zero := 0
	zeroLimit.UsageLimit = &zero
	assert.Error(t, zeroLimit.Validate())

	badDate := valid
	badDate.ExpiresAt = strPtr("next week")
	assert.Error(t, badDate.Validate())

	withDate := valid
	withDate.ExpiresAt = strPtr("2026-12-31T23:59:59Z")
	require.NoError(t, withDate.Validate())
	require.NotNil(t, withDate.ParsedExpiresAt())
	assert.Equal(t, 2026, withDate.ParsedExpiresAt().Year())
}

func TestUpdateCommissionStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateCommissionStatusRequest{Status: CommissionStatusApproved}.Validate())
	assert.NoError(t, UpdateCommissionStatusRequest{Status: CommissionStatusPaid}.Validate())
	assert.Error(t, UpdateCommissionStatusRequest{Status: CommissionStatusPending}.Validate())
	assert.Error(t, UpdateCommissionStatusRequest{}.Validate())
}

func TestListCommissionsFilter_Normalize(t *testing.T) {
	f := ListCommissionsFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)

	assert.Error(t, ListCommissionsFilter{Limit: 500}.Validate())
	assert.Error(t, ListCommissionsFilter{Status: "void"}.Validate())
}

func TestPerformanceFilter_Bounds(t *testing.T) {
	from, to := PerformanceFilter{}.Bounds()
	assert.Nil(t, from)
	assert.Nil(t, to)

	from, to = PerformanceFilter{From: "2026-01-01", To: "2026-01-31T23:59:59+07:00"}.Bounds()
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.True(t, from.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2026, 1, 31, 16, 59, 59, 0, time.UTC)))

	// bound sai format bị bỏ qua
	from, to = PerformanceFilter{From: "yesterday", To: "2026-02-01"}.Bounds()
	assert.Nil(t, from)
	assert.NotNil(t, to)
}

func TestPromoCode_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	before, after := now.Add(-time.Second), now.Add(time.Second)

	assert.False(t, (&PromoCode{}).IsExpired(now))
	assert.True(t, (&PromoCode{ExpiresAt: &now}).IsExpired(now))
	assert.True(t, (&PromoCode{ExpiresAt: &before}).IsExpired(now))
	assert.False(t, (&PromoCode{ExpiresAt: &after}).IsExpired(now))
}

func TestCommission_CanTransitionTo(t *testing.T) {
	pending := &Commission{Status: CommissionStatusPending}
	approved := &Commission{Status: CommissionStatusApproved}
	paid := &Commission{Status: CommissionStatusPaid}

	assert.True(t, pending.CanTransitionTo(CommissionStatusApproved))
	assert.True(t, pending.CanTransitionTo(CommissionStatusPaid))
	assert.True(t, approved.CanTransitionTo(CommissionStatusPaid))
	assert.False(t, approved.CanTransitionTo(CommissionStatusPending))
	assert.False(t, paid.CanTransitionTo(CommissionStatusApproved))
}
