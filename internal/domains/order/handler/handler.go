package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	influencer "storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder godoc
// @Summary Create order (guest checkout)
// @Description ?ref=<influencer_id> được dùng khi body không có ref_influencer_id
// @Router /v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.RefInfluencerID == "" {
		req.RefInfluencerID = c.Query("ref")
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order created successfully", resp)
}

// GetOrderByNumber godoc
// @Summary Track order by number
// @Router /v1/orders/number/{orderNumber} [get]
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	order, err := h.orderService.GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", order)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	// Promo code errors: message hiển thị thẳng cho khách
	var promoErr *influencer.AppError
	if errors.As(err, &promoErr) {
		response.ErrorWithCode(c, promoErr.HTTPStatus, string(promoErr.Code), promoErr.Message, nil)
		return
	}

	if errors.Is(err, model.ErrOrderNotFound) {
		response.ErrorWithCode(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "Order not found", nil)
		return
	}

	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		var details interface{}
		var fieldErrs validation.Errors
		if errors.As(orderErr.Err, &fieldErrs) {
			details = fieldErrs
		}
		response.ErrorWithCode(c, http.StatusBadRequest, orderErr.Code, orderErr.Message, details)
		return
	}

	logger.Error("Order API internal error", err)
	response.ErrorWithCode(c, http.StatusInternalServerError, "SYS_INTERNAL_ERROR", "Internal server error", nil)
}
