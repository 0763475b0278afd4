package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupOrderRoutes(v1, c)
		setupPromoCodeRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// ORDER ROUTES (guest checkout)
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	{
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("/number/:orderNumber", c.OrderHandler.GetOrderByNumber)
	}
}

// ========================================
// PUBLIC PROMO CODE ROUTES
// ========================================
func setupPromoCodeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/promo-codes/:code/preview", c.InfluencerPublicHandler.PreviewPromoCode)
}

// ========================================
// ADMIN ROUTES (JWT + admin role)
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())

	h := c.InfluencerAdminHandler

	influencers := admin.Group("/influencers")
	{
		influencers.GET("/performance", h.GetPerformance)
		influencers.POST("", h.CreateInfluencer)
		influencers.GET("", h.ListInfluencers)
		influencers.GET("/:id", h.GetInfluencer)
		influencers.PATCH("/:id", h.UpdateInfluencer)
		influencers.PATCH("/:id/status", h.UpdateInfluencerStatus)
	}

	promoCodes := admin.Group("/promo-codes")
	{
		promoCodes.POST("", h.CreatePromoCode)
		promoCodes.GET("", h.ListPromoCodes)
		promoCodes.GET("/:id", h.GetPromoCode)
		promoCodes.PATCH("/:id", h.UpdatePromoCode)
		promoCodes.POST("/:id/deactivate", h.DeactivatePromoCode)
	}

	commissions := admin.Group("/commissions")
	{
		commissions.GET("", h.ListCommissions)
		commissions.PATCH("/:id/status", h.UpdateCommissionStatus)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis (report cache only)
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
