package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/shared/response"
)

// Recovery bắt panic trong handler, trả SYS_INTERNAL_ERROR thay vì đóng connection
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			// Handler có thể đã ghi một phần body
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.ErrorWithCode(c, http.StatusInternalServerError, "SYS_INTERNAL_ERROR", "Internal server error", nil)
		}()

		c.Next()
	}
}
