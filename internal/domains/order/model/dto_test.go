package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Buyer",
		PaymentMethod: PaymentMethodCOD,
		Items: []CreateOrderItem{
			{ProductName: "Notebook", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2},
		},
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	noItems := validRequest()
	noItems.Items = nil
	assert.Error(t, noItems.Validate())

	staleRef := validRequest()
	staleRef.RefInfluencerID = "creator-123"
	assert.NoError(t, staleRef.Validate())

	badMethod := validRequest()
	badMethod.PaymentMethod = "barter"
	assert.Error(t, badMethod.Validate())
}

func TestCreateOrderItem_Validate(t *testing.T) {
	cases := map[string]bool{
		"19.99": true,
		"0":     false,
		"-5":    false,
		"1.999": false,
	}
	for price, ok := range cases {
		item := CreateOrderItem{ProductName: "Pen", UnitPrice: decimal.RequireFromString(price), Quantity: 1}
		if ok {
			assert.NoError(t, item.Validate(), price)
		} else {
			assert.Error(t, item.Validate(), price)
		}
	}

	assert.Error(t, CreateOrderItem{ProductName: "Pen", UnitPrice: decimal.NewFromInt(1), Quantity: 0}.Validate())
}

func TestCreateOrderRequest_UnitPriceAcceptsStringAndNumber(t *testing.T) {
	var req CreateOrderRequest
	body := `{"items":[{"product_name":"A","unit_price":"19.99","quantity":1},{"product_name":"B","unit_price":5.5,"quantity":2}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "30.99", CalculateSubtotal(req.Items).StringFixed(2))
}

func TestCreateOrderRequest_Referral(t *testing.T) {
	req := validRequest()
	assert.Nil(t, req.Referral())

	req.RefInfluencerID = "garbage"
	assert.Nil(t, req.Referral())

	id := uuid.New()
	req.RefInfluencerID = id.String()
	req.RefCode = "linh"
	ref := req.Referral()
	require.NotNil(t, ref)
	assert.Equal(t, id, *ref.RefInfluencerID)
	assert.Equal(t, "linh", ref.RefCode)
}

func TestCalculateTotal_NeverNegative(t *testing.T) {
	assert.True(t, CalculateTotal(decimal.NewFromInt(10), decimal.NewFromInt(15)).IsZero())
	assert.Equal(t, "7.50", CalculateTotal(decimal.NewFromInt(10), decimal.RequireFromString("2.5")).StringFixed(2))
}

func TestFormatOrderNumber(t *testing.T) {
	// 23:30 tại UTC-5 đã sang ngày hôm sau theo UTC
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "ORD-20260315-ABCD2345", FormatOrderNumber(now, "ABCD2345"))
}

func TestOrder_Source(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, SourcePromoCode, (&Order{PromoCodeID: &id, InfluencerID: &id}).Source())
	assert.Equal(t, SourceReferral, (&Order{InfluencerID: &id}).Source())
	assert.Equal(t, SourceNone, (&Order{}).Source())
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.RequireFromString("3.25"), Quantity: 3}
	assert.Equal(t, "9.75", item.LineTotal().StringFixed(2))
}
