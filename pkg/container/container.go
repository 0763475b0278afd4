package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/events"
	"storefront-backend/internal/infrastructure/metrics"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/idgen"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	influencerHandler "storefront-backend/internal/domains/influencer/handler"
	influencerRepo "storefront-backend/internal/domains/influencer/repository"
	influencerService "storefront-backend/internal/domains/influencer/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
)

const (
	promoCodeLength   = 8
	orderSuffixLength = 8
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự khởi tạo: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Publisher  events.Publisher
	Metrics    *metrics.CheckoutMetrics

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	InfluencerRepo influencerRepo.InfluencerRepository
	PromoCodeRepo  influencerRepo.PromoCodeRepository
	CommissionRepo influencerRepo.CommissionRepository
	OrderRepo      orderRepo.OrderRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	Resolver          *influencerService.Resolver
	InfluencerService influencerService.InfluencerService
	PromoCodeService  influencerService.PromoCodeService
	CommissionService influencerService.CommissionService
	OrderService      orderService.OrderService

	// ========================================
	// HANDLER LAYER
	// ========================================
	InfluencerAdminHandler  *influencerHandler.AdminHandler
	InfluencerPublicHandler *influencerHandler.PublicHandler
	OrderHandler            *orderHandler.OrderHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(dbConfig.URL()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Database migrations applied", nil)
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// Redis chỉ dùng cho report cache, lỗi không chặn startup
		logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: AUTH, EVENTS, METRICS
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	c.Publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.CommissionTopic)
	c.Metrics = metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	// ========================================
	// STEP 5-7: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// initRepositories khởi tạo tất cả repositories
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.InfluencerRepo = influencerRepo.NewInfluencerRepository(pool)
	c.PromoCodeRepo = influencerRepo.NewPromoCodeRepository(pool)
	c.CommissionRepo = influencerRepo.NewCommissionRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
}

// initServices khởi tạo tất cả services
func (c *Container) initServices() {
	c.Resolver = influencerService.NewResolver(
		c.PromoCodeRepo,
		c.InfluencerRepo,
		c.CommissionRepo,
		c.Metrics,
	)

	c.InfluencerService = influencerService.NewInfluencerService(
		c.InfluencerRepo,
		c.Cache,
		c.Config.Report.CacheTTL,
		c.Metrics,
	)

	c.PromoCodeService = influencerService.NewPromoCodeService(
		c.PromoCodeRepo,
		c.InfluencerRepo,
		idgen.MustReadable(promoCodeLength),
	)

	// Commission đổi status → report cache phải invalidate
	c.CommissionService = influencerService.NewCommissionService(c.CommissionRepo, c.InfluencerService)

	c.OrderService = orderService.NewOrderService(
		c.DB.Pool,
		c.OrderRepo,
		c.Resolver,
		c.InfluencerService,
		c.Publisher,
		c.Metrics,
		idgen.MustReadable(orderSuffixLength),
	)
}

// initHandlers khởi tạo tất cả HTTP handlers
func (c *Container) initHandlers() {
	c.InfluencerAdminHandler = influencerHandler.NewAdminHandler(
		c.InfluencerService,
		c.PromoCodeService,
		c.CommissionService,
	)
	c.InfluencerPublicHandler = influencerHandler.NewPublicHandler(c.PromoCodeService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("Failed to close Redis", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("Container cleanup completed", nil)
}
