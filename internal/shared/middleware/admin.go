package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

const RoleAdmin = "admin"

// AdminMiddleware chặn mọi role khác admin, phải đứng sau AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		userID, _ := c.Get("userID")
		if role == RoleAdmin {
			c.Next()
			return
		}

		logger.Warn("Admin route denied", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"user_id":    userID,
			"role":       role,
			"route":      c.FullPath(),
		})
		response.Forbidden(c, "Access denied: admin role required")
	}
}
