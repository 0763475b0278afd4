package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
	"storefront-backend/internal/infrastructure/metrics"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

const (
	performanceCachePrefix = "report:influencers:"
	defaultReportCacheTTL  = 2 * time.Minute
)

type influencerService struct {
	repo     repository.InfluencerRepository
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.CheckoutMetrics

	// tăng mỗi lần invalidate, read chạy chéo invalidate thì không ghi cache
	generation atomic.Uint64
}

// NewInfluencerService - cache nil thì report luôn đọc DB
func NewInfluencerService(
	repo repository.InfluencerRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	m *metrics.CheckoutMetrics,
) InfluencerService {
	if cacheTTL <= 0 {
		cacheTTL = defaultReportCacheTTL
	}
	return &influencerService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// -------------------------------------------------------------------
// ADMIN CRUD
// -------------------------------------------------------------------

func (s *influencerService) CreateInfluencer(ctx context.Context, req *model.CreateInfluencerRequest) (*model.Influencer, error) {
	status := req.Status
	if status == "" {
		status = model.InfluencerStatusActive
	}

	influencer := &model.Influencer{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		CommissionType:  req.CommissionType,
		CommissionValue: decimal.NewFromFloat(req.CommissionValue).Round(2),
		Status:          status,
	}

	if err := s.repo.Create(ctx, influencer); err != nil {
		return nil, err
	}

	logger.Info("Influencer created", map[string]interface{}{
		"influencer_id": influencer.ID.String(),
		"email":         influencer.Email,
	})
	return influencer, nil
}

func (s *influencerService) UpdateInfluencer(ctx context.Context, id uuid.UUID, req *model.UpdateInfluencerRequest) (*model.Influencer, error) {
	influencer, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		influencer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		influencer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.CommissionType != nil {
		influencer.CommissionType = *req.CommissionType
	}
	if req.CommissionValue != nil {
		influencer.CommissionValue = decimal.NewFromFloat(*req.CommissionValue).Round(2)
	}

	// commission_value cũ có thể > 100 khi đổi từ fixed sang percentage
	if influencer.CommissionType == model.AmountTypePercentage && influencer.CommissionValue.GreaterThan(hundred) {
		return nil, model.ErrPercentageTooLarge
	}

	if err := s.repo.Update(ctx, influencer); err != nil {
		return nil, err
	}

	// commission rate không đổi các commission đã ghi, report chỉ đổi name/email
	s.InvalidatePerformanceCache(ctx)
	return influencer, nil
}

func (s *influencerService) UpdateInfluencerStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	logger.Info("Influencer status updated", map[string]interface{}{
		"influencer_id": id.String(),
		"status":        status,
	})
	s.InvalidatePerformanceCache(ctx)
	return nil
}

func (s *influencerService) GetInfluencer(ctx context.Context, id uuid.UUID) (*model.Influencer, error) {
	return s.repo.FindByID(ctx, nil, id)
}

func (s *influencerService) ListInfluencers(ctx context.Context, status string) ([]*model.Influencer, error) {
	return s.repo.List(ctx, status)
}

// -------------------------------------------------------------------
// PERFORMANCE REPORT
// -------------------------------------------------------------------

// GetInfluencerPerformance đọc cache trước, lỗi cache chỉ log rồi fallback DB
func (s *influencerService) GetInfluencerPerformance(ctx context.Context, filter model.PerformanceFilter) ([]*model.InfluencerPerformance, error) {
	from, to := filter.Bounds()
	key := performanceCacheKey(from, to)

	if s.cache != nil {
		var cached []*model.InfluencerPerformance
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Error("Performance report cache read failed", err)
		}
		if found {
			s.metrics.RecordReportCache(true)
			return cached, nil
		}
		s.metrics.RecordReportCache(false)
	}

	gen := s.generation.Load()
	report, err := s.repo.GetPerformance(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get influencer performance: %w", err)
	}

	if s.generation.Load() != gen {
		logger.Debug("Performance report invalidated during read, skip cache write", map[string]interface{}{
			"key": key,
		})
		return report, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			logger.Error("Performance report cache write failed", err)
		}
	}

	return report, nil
}

// InvalidatePerformanceCache xóa mọi window đã cache
func (s *influencerService) InvalidatePerformanceCache(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, performanceCachePrefix+"*"); err != nil {
		logger.Error("Performance report cache invalidation failed", err)
	}
}

// performanceCacheKey - key theo window đã parse, "-" = không giới hạn
func performanceCacheKey(from, to *time.Time) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return performanceCachePrefix + bound(from) + ":" + bound(to)
}
