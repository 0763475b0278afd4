package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/service"
	"storefront-backend/internal/shared/response"
)

// PublicHandler - API cho checkout form, không cần đăng nhập
type PublicHandler struct {
	promoCodes service.PromoCodeService
}

func NewPublicHandler(promoCodes service.PromoCodeService) *PublicHandler {
	return &PublicHandler{promoCodes: promoCodes}
}

// PreviewPromoCode trả về discount dự kiến, không consume lượt dùng
// @Router /v1/promo-codes/:code/preview [get]
func (h *PublicHandler) PreviewPromoCode(c *gin.Context) {
	subtotal := decimal.Zero
	if raw := c.Query("subtotal"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			response.ErrorWithCode(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "subtotal must be a non-negative number", nil)
			return
		}
		subtotal = parsed
	}

	preview, err := h.promoCodes.PreviewPromoCode(c.Request.Context(), c.Param("code"), subtotal)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Promo code is valid", preview)
}
