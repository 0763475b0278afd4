package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// handleError map AppError → HTTP status + code, còn lại là 500
func handleError(c *gin.Context, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		response.ErrorWithCode(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message, nil)
		return
	}

	logger.Error("Influencer API internal error", err)
	response.ErrorWithCode(c, http.StatusInternalServerError, string(model.ErrCodeInternalError), "Internal server error", nil)
}

// validationFailed trả về 400 kèm lỗi theo từng field nếu là ozzo Errors
func validationFailed(c *gin.Context, err error) {
	var details interface{} = err.Error()

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details = fieldErrs
	}

	response.ErrorWithCode(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "Invalid request data", details)
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "Invalid "+name, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
