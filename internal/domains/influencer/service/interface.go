package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/influencer/model"
)

// InfluencerService - admin operations + performance report
type InfluencerService interface {
	CreateInfluencer(ctx context.Context, req *model.CreateInfluencerRequest) (*model.Influencer, error)
	UpdateInfluencer(ctx context.Context, id uuid.UUID, req *model.UpdateInfluencerRequest) (*model.Influencer, error)
	UpdateInfluencerStatus(ctx context.Context, id uuid.UUID, status string) error
	GetInfluencer(ctx context.Context, id uuid.UUID) (*model.Influencer, error)
	ListInfluencers(ctx context.Context, status string) ([]*model.Influencer, error)

	GetInfluencerPerformance(ctx context.Context, filter model.PerformanceFilter) ([]*model.InfluencerPerformance, error)
	PerformanceCacheInvalidator
}

// PerformanceCacheInvalidator được gọi mỗi khi commission thay đổi
type PerformanceCacheInvalidator interface {
	InvalidatePerformanceCache(ctx context.Context)
}

// PromoCodeService - admin CRUD + public preview
type PromoCodeService interface {
	CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error)
	UpdatePromoCode(ctx context.Context, id uuid.UUID, req *model.UpdatePromoCodeRequest) (*model.PromoCode, error)
	DeactivatePromoCode(ctx context.Context, id uuid.UUID) error
	GetPromoCode(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	ListPromoCodes(ctx context.Context, filter *model.ListPromoCodesFilter) ([]*model.PromoCode, error)

	// PreviewPromoCode không consume lượt dùng
	PreviewPromoCode(ctx context.Context, code string, subtotal decimal.Decimal) (*model.PromoPreviewResponse, error)
}

// CommissionService - admin ledger operations
type CommissionService interface {
	ListCommissions(ctx context.Context, filter *model.ListCommissionsFilter) ([]*model.Commission, int, error)
	UpdateCommissionStatus(ctx context.Context, id uuid.UUID, status string) (*model.Commission, error)
}
