package response

import (
	"github.com/gin-gonic/gin"
)

// Response là envelope chung cho mọi API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Error - code lấy từ status mặc định, details tùy ý
func Error(c *gin.Context, statusCode int, message string, details interface{}) {
	ErrorWithCode(c, statusCode, defaultCode(statusCode), message, details)
}

// ErrorWithCode dùng khi domain có error code riêng (PROMO_EXPIRED, ...)
func ErrorWithCode(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, 400, "BAD_REQUEST", message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, 401, "UNAUTHORIZED", message, nil)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, 403, "FORBIDDEN", message, nil)
}

func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, 404, "NOT_FOUND", message, nil)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, 500, "INTERNAL_SERVER_ERROR", message, nil)
}

func defaultCode(statusCode int) string {
	switch statusCode {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
