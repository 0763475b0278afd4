package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	influencer "storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/order/model"
)

// stubOrderService trả về kết quả cố định và ghi lại request nhận được
type stubOrderService struct {
	lastReq model.CreateOrderRequest
	resp    *model.CreateOrderResponse
	order   *model.Order
	err     error
}

func (s *stubOrderService) CreateOrder(_ context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	s.lastReq = req
	return s.resp, s.err
}

func (s *stubOrderService) GetOrderByNumber(_ context.Context, _ string) (*model.Order, error) {
	return s.order, s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func serve(t *testing.T, svc *stubOrderService, method, path, body string) (int, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewOrderHandler(svc)
	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/number/:orderNumber", h.GetOrderByNumber)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

const orderBody = `{
	"customer_email": "buyer@example.com",
	"customer_name": "Buyer",
	"payment_method": "cod",
	"items": [{"product_name": "Notebook", "unit_price": "25.00", "quantity": 4}]
}`

func TestCreateOrder_Created(t *testing.T) {
	svc := &stubOrderService{resp: &model.CreateOrderResponse{
		OrderID:          uuid.New(),
		OrderNumber:      "ORD-20260314-AAAA1111",
		Subtotal:         "100.00",
		DiscountAmount:   "0.00",
		Total:            "100.00",
		CommissionAmount: "0.00",
	}}

	status, env := serve(t, svc, http.MethodPost, "/orders", orderBody)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)

	var resp model.CreateOrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "100.00", resp.Total)
	assert.Equal(t, "25", svc.lastReq.Items[0].UnitPrice.String())
}

func TestCreateOrder_RefQueryFallback(t *testing.T) {
	ref := uuid.NewString()
	svc := &stubOrderService{resp: &model.CreateOrderResponse{}}

	status, _ := serve(t, svc, http.MethodPost, "/orders?ref="+ref, orderBody)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, ref, svc.lastReq.RefInfluencerID)
}

func TestCreateOrder_PromoErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   influencer.ErrorCode
	}{
		{influencer.ErrInvalidPromoCode, http.StatusBadRequest, influencer.ErrCodePromoInvalid},
		{influencer.ErrPromoCodeInactive, http.StatusBadRequest, influencer.ErrCodePromoInactive},
		{influencer.ErrPromoCodeExpired, http.StatusBadRequest, influencer.ErrCodePromoExpired},
		{influencer.ErrPromoCodeUsageLimitReached, http.StatusConflict, influencer.ErrCodePromoUsageLimitReached},
	}

	for _, c := range cases {
		status, env := serve(t, &stubOrderService{err: c.err}, http.MethodPost, "/orders", orderBody)
		assert.Equal(t, c.status, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, string(c.code), env.Error.Code)
	}
}

func TestCreateOrder_ValidationError(t *testing.T) {
	fieldErrs := validation.Errors{"payment_method": errors.New("must be a valid value")}
	svc := &stubOrderService{err: model.NewOrderError(model.ErrCodeInvalidOrder, "Invalid order request", fieldErrs)}

	status, env := serve(t, svc, http.MethodPost, "/orders", orderBody)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, model.ErrCodeInvalidOrder, env.Error.Code)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Contains(t, details, "payment_method")
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	status, _ := serve(t, &stubOrderService{}, http.MethodPost, "/orders", `{"items": "nope"`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateOrder_InternalError(t *testing.T) {
	status, env := serve(t, &stubOrderService{err: errors.New("db down")}, http.MethodPost, "/orders", orderBody)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "SYS_INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "db down")
}

func TestGetOrderByNumber_Handler(t *testing.T) {
	order := &model.Order{ID: uuid.New(), OrderNumber: "ORD-20260314-AAAA1111"}

	status, _ := serve(t, &stubOrderService{order: order}, http.MethodGet, "/orders/number/ORD-20260314-AAAA1111", "")
	assert.Equal(t, http.StatusOK, status)

	status, env := serve(t, &stubOrderService{err: model.ErrOrderNotFound}, http.MethodGet, "/orders/number/ORD-X", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, model.ErrCodeOrderNotFound, env.Error.Code)
}
