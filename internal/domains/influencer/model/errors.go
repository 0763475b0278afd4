package model

import "net/http"

type ErrorCode string

const (
	// Checkout / promo validation
	ErrCodePromoInvalid           ErrorCode = "PROMO_INVALID"
	ErrCodePromoInactive          ErrorCode = "PROMO_INACTIVE"
	ErrCodePromoExpired           ErrorCode = "PROMO_EXPIRED"
	ErrCodePromoUsageLimitReached ErrorCode = "PROMO_USAGE_LIMIT_REACHED"

	// Admin operations
	ErrCodeInfluencerNotFound    ErrorCode = "INFLUENCER_NOT_FOUND"
	ErrCodeInfluencerEmailExists ErrorCode = "INFLUENCER_EMAIL_EXISTS"
	ErrCodePromoNotFound         ErrorCode = "PROMO_NOT_FOUND"
	ErrCodePromoDuplicateCode    ErrorCode = "PROMO_DUPLICATE_CODE"
	ErrCodeCommissionNotFound    ErrorCode = "COMMISSION_NOT_FOUND"
	ErrCodeCommissionTransition  ErrorCode = "COMMISSION_INVALID_TRANSITION"

	ErrCodeValidationFailed ErrorCode = "VAL_INVALID_INPUT"
	ErrCodeInternalError    ErrorCode = "SYS_INTERNAL_ERROR"
)

// AppError mang message hiển thị cho end user + HTTP status cho handler
// Predefined errors là pointer nên errors.Is so sánh theo identity
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Checkout errors: propagate nguyên vẹn để rollback toàn bộ order transaction
var (
	ErrInvalidPromoCode = &AppError{
		Code:       ErrCodePromoInvalid,
		Message:    "Invalid promo code",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoCodeInactive = &AppError{
		Code:       ErrCodePromoInactive,
		Message:    "Promo code is inactive",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoCodeExpired = &AppError{
		Code:       ErrCodePromoExpired,
		Message:    "Promo code has expired",
		HTTPStatus: http.StatusBadRequest,
	}

	// Bao gồm cả trường hợp thua race ở conditional UPDATE
	ErrPromoCodeUsageLimitReached = &AppError{
		Code:       ErrCodePromoUsageLimitReached,
		Message:    "Promo code usage limit reached",
		HTTPStatus: http.StatusConflict,
	}
)

// Admin errors
var (
	ErrInfluencerNotFound = &AppError{
		Code:       ErrCodeInfluencerNotFound,
		Message:    "Influencer not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrInfluencerEmailExists = &AppError{
		Code:       ErrCodeInfluencerEmailExists,
		Message:    "An influencer with this email already exists",
		HTTPStatus: http.StatusConflict,
	}

	ErrPromoCodeNotFound = &AppError{
		Code:       ErrCodePromoNotFound,
		Message:    "Promo code not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrPromoCodeExists = &AppError{
		Code:       ErrCodePromoDuplicateCode,
		Message:    "Promo code already exists",
		HTTPStatus: http.StatusConflict,
	}

	ErrCommissionNotFound = &AppError{
		Code:       ErrCodeCommissionNotFound,
		Message:    "Commission not found",
		HTTPStatus: http.StatusNotFound,
	}

	// Khi partial update đổi type sang percentage mà value cũ > 100
	ErrPercentageTooLarge = &AppError{
		Code:       ErrCodeValidationFailed,
		Message:    "Percentage value cannot exceed 100",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUsageLimitBelowCount = &AppError{
		Code:       ErrCodeValidationFailed,
		Message:    "Usage limit cannot be lower than the current usage count",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidCommissionTransition = &AppError{
		Code:       ErrCodeCommissionTransition,
		Message:    "Commission status transition is not allowed",
		HTTPStatus: http.StatusBadRequest,
	}
)
