package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/service"
	"storefront-backend/internal/shared/response"
)

// AdminHandler xử lý các API quản trị (admin-only)
type AdminHandler struct {
	influencers service.InfluencerService
	promoCodes  service.PromoCodeService
	commissions service.CommissionService
}

// NewAdminHandler tạo handler instance
func NewAdminHandler(
	influencers service.InfluencerService,
	promoCodes service.PromoCodeService,
	commissions service.CommissionService,
) *AdminHandler {
	return &AdminHandler{
		influencers: influencers,
		promoCodes:  promoCodes,
		commissions: commissions,
	}
}

// -------------------------------------------------------------------
// INFLUENCERS
// -------------------------------------------------------------------

// CreateInfluencer
// @Router /v1/admin/influencers [post]
func (h *AdminHandler) CreateInfluencer(c *gin.Context) {
	var req model.CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	influencer, err := h.influencers.CreateInfluencer(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Influencer created", influencer)
}

// UpdateInfluencer - partial update
// @Router /v1/admin/influencers/:id [patch]
func (h *AdminHandler) UpdateInfluencer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	influencer, err := h.influencers.UpdateInfluencer(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Influencer updated", influencer)
}

// UpdateInfluencerStatus
// @Router /v1/admin/influencers/:id/status [patch]
func (h *AdminHandler) UpdateInfluencerStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateInfluencerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	if err := h.influencers.UpdateInfluencerStatus(c.Request.Context(), id, req.Status); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Influencer status updated", gin.H{
		"id":     id,
		"status": req.Status,
	})
}

// GetInfluencer
// @Router /v1/admin/influencers/:id [get]
func (h *AdminHandler) GetInfluencer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	influencer, err := h.influencers.GetInfluencer(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", influencer)
}

// ListInfluencers - ?status=active|inactive
// @Router /v1/admin/influencers [get]
func (h *AdminHandler) ListInfluencers(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != model.InfluencerStatusActive && status != model.InfluencerStatusInactive {
		response.ErrorWithCode(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "Invalid status filter", nil)
		return
	}

	influencers, err := h.influencers.ListInfluencers(c.Request.Context(), status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", influencers, &response.Meta{Total: len(influencers)})
}

// GetPerformance - ?from=&to= (ISO), bound sai format bị bỏ qua
// @Router /v1/admin/influencers/performance [get]
func (h *AdminHandler) GetPerformance(c *gin.Context) {
	var filter model.PerformanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	report, err := h.influencers.GetInfluencerPerformance(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", report)
}

// -------------------------------------------------------------------
// PROMO CODES
// -------------------------------------------------------------------

// CreatePromoCode - code để trống thì hệ thống sinh
// @Router /v1/admin/promo-codes [post]
func (h *AdminHandler) CreatePromoCode(c *gin.Context) {
	var req model.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req.NormalizeCode()
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	promo, err := h.promoCodes.CreatePromoCode(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Promo code created", promo)
}

// UpdatePromoCode
// @Router /v1/admin/promo-codes/:id [patch]
func (h *AdminHandler) UpdatePromoCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	promo, err := h.promoCodes.UpdatePromoCode(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Promo code updated", promo)
}

// DeactivatePromoCode - promo code không bao giờ bị xóa
// @Router /v1/admin/promo-codes/:id/deactivate [post]
func (h *AdminHandler) DeactivatePromoCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.promoCodes.DeactivatePromoCode(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Promo code deactivated", nil)
}

// GetPromoCode
// @Router /v1/admin/promo-codes/:id [get]
func (h *AdminHandler) GetPromoCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	promo, err := h.promoCodes.GetPromoCode(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", promo)
}

// ListPromoCodes - ?influencer_id=&active=
// @Router /v1/admin/promo-codes [get]
func (h *AdminHandler) ListPromoCodes(c *gin.Context) {
	var filter model.ListPromoCodesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	if err := filter.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	promos, err := h.promoCodes.ListPromoCodes(c.Request.Context(), &filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", promos, &response.Meta{Total: len(promos)})
}

// -------------------------------------------------------------------
// COMMISSIONS
// -------------------------------------------------------------------

// ListCommissions - ?influencer_id=&status=&page=&limit=
// @Router /v1/admin/commissions [get]
func (h *AdminHandler) ListCommissions(c *gin.Context) {
	var filter model.ListCommissionsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	if err := filter.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	commissions, total, err := h.commissions.ListCommissions(c.Request.Context(), &filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", commissions, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// UpdateCommissionStatus - approved | paid
// @Router /v1/admin/commissions/:id/status [patch]
func (h *AdminHandler) UpdateCommissionStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCommissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		validationFailed(c, err)
		return
	}

	commission, err := h.commissions.UpdateCommissionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Commission status updated", commission)
}
