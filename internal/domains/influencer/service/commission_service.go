package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
	"storefront-backend/pkg/logger"
)

type commissionService struct {
	repo        repository.CommissionRepository
	invalidator PerformanceCacheInvalidator
	now         func() time.Time
}

func NewCommissionService(repo repository.CommissionRepository, invalidator PerformanceCacheInvalidator) CommissionService {
	return &commissionService{
		repo:        repo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *commissionService) ListCommissions(ctx context.Context, filter *model.ListCommissionsFilter) ([]*model.Commission, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// UpdateCommissionStatus: pending → approved | paid, approved → paid
//
// UPDATE có điều kiện status = status hiện tại, nếu request khác đổi trước
// thì trả về invalid transition thay vì ghi đè.
func (s *commissionService) UpdateCommissionStatus(ctx context.Context, id uuid.UUID, status string) (*model.Commission, error) {
	commission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !commission.CanTransitionTo(status) {
		return nil, model.ErrInvalidCommissionTransition
	}

	now := s.now()
	updated, err := s.repo.UpdateStatus(ctx, id, commission.Status, status, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, model.ErrInvalidCommissionTransition
	}

	logger.Info("Commission status updated", map[string]interface{}{
		"commission_id": id.String(),
		"from":          commission.Status,
		"to":            status,
	})

	commission.Status = status
	commission.UpdatedAt = now

	if s.invalidator != nil {
		s.invalidator.InvalidatePerformanceCache(ctx)
	}
	return commission, nil
}
