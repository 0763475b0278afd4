package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront-backend/internal/domains/influencer/model"
)

// DBTX là phần chung của *pgxpool.Pool và pgx.Tx
// Method nhận tx == nil sẽ chạy trên pool
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InfluencerRepository - data access cho influencers và performance report
type InfluencerRepository interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Influencer, error)
	List(ctx context.Context, status string) ([]*model.Influencer, error)
	Create(ctx context.Context, influencer *model.Influencer) error
	Update(ctx context.Context, influencer *model.Influencer) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Performance dùng correlated subqueries, from/to nil = không giới hạn
	GetPerformance(ctx context.Context, from, to *time.Time) ([]*model.InfluencerPerformance, error)
}

// PromoCodeRepository - data access cho promo codes
type PromoCodeRepository interface {
	// FindWithInfluencer đọc promo + influencer trong một query (code đã normalize)
	FindWithInfluencer(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCodeWithInfluencer, error)

	// IncrementUsage tăng usage_count nếu predicate vẫn đúng tại thời điểm ghi
	// Trả về false khi WHERE không match (hết lượt / bị tắt / hết hạn giữa chừng)
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID, now time.Time) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	List(ctx context.Context, influencerID *uuid.UUID, active *bool) ([]*model.PromoCode, error)
	Create(ctx context.Context, promo *model.PromoCode) error
	Update(ctx context.Context, promo *model.PromoCode) error
}

// CommissionRepository - ledger entries
type CommissionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, commission *model.Commission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Commission, error)
	List(ctx context.Context, filter *model.ListCommissionsFilter) ([]*model.Commission, int, error)

	// UpdateStatus chỉ ghi khi status hiện tại == from, false nếu đã bị đổi bởi request khác
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, now time.Time) (bool, error)
}
