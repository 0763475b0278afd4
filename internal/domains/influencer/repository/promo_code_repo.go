package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/influencer/model"
)

type promoCodeRepository struct {
	db *pgxpool.Pool
}

func NewPromoCodeRepository(db *pgxpool.Pool) PromoCodeRepository {
	return &promoCodeRepository{db: db}
}

func (r *promoCodeRepository) q(tx pgx.Tx) DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

const promoCodeColumns = `
	p.id, p.code, p.influencer_id,
	p.discount_type, p.discount_value,
	p.usage_limit, p.usage_count, p.expires_at, p.active,
	p.created_at, p.updated_at`

func scanPromoCode(row pgx.Row, extra ...any) (*model.PromoCode, error) {
	var p model.PromoCode
	dest := []any{
		&p.ID, &p.Code, &p.InfluencerID,
		&p.DiscountType, &p.DiscountValue,
		&p.UsageLimit, &p.UsageCount, &p.ExpiresAt, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindWithInfluencer đọc promo code JOIN influencer trong một lần đọc
func (r *promoCodeRepository) FindWithInfluencer(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCodeWithInfluencer, error) {
	query := `
		SELECT ` + promoCodeColumns + `,
			i.status, i.commission_type, i.commission_value
		FROM promo_codes p
		INNER JOIN influencers i ON i.id = p.influencer_id
		WHERE p.code = $1
	`

	var out model.PromoCodeWithInfluencer
	p, err := scanPromoCode(r.q(tx).QueryRow(ctx, query, code),
		&out.InfluencerStatus,
		&out.InfluencerCommissionType,
		&out.InfluencerCommissionValue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromoCodeNotFound
		}
		return nil, fmt.Errorf("find promo code with influencer: %w", err)
	}

	out.PromoCode = *p
	return &out, nil
}

// IncrementUsage - conditional UPDATE ... RETURNING
//
// Predicate được check lại lúc ghi để đóng race window giữa read và write:
// hai request cùng redeem lượt cuối cùng thì chỉ một request match WHERE.
func (r *promoCodeRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID, now time.Time) (bool, error) {
	query := `
		UPDATE promo_codes
		SET usage_count = usage_count + 1,
			updated_at = $2
		WHERE id = $1
		  AND active = TRUE
		  AND (expires_at IS NULL OR expires_at > $2)
		  AND (usage_limit IS NULL OR usage_count < usage_limit)
		RETURNING id
	`

	var updatedID uuid.UUID
	err := r.q(tx).QueryRow(ctx, query, id, now).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("increment promo code usage: %w", err)
	}

	return true, nil
}

func (r *promoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes p WHERE p.id = $1`

	p, err := scanPromoCode(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromoCodeNotFound
		}
		return nil, fmt.Errorf("find promo code by id: %w", err)
	}
	return p, nil
}

func (r *promoCodeRepository) List(ctx context.Context, influencerID *uuid.UUID, active *bool) ([]*model.PromoCode, error) {
	whereClauses := []string{}
	args := []any{}

	if influencerID != nil {
		args = append(args, *influencerID)
		whereClauses = append(whereClauses, fmt.Sprintf("p.influencer_id = $%d", len(args)))
	}
	if active != nil {
		args = append(args, *active)
		whereClauses = append(whereClauses, fmt.Sprintf("p.active = $%d", len(args)))
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM promo_codes p %s ORDER BY p.created_at DESC`, promoCodeColumns, whereSQL)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	promos := []*model.PromoCode{}
	for rows.Next() {
		p, err := scanPromoCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promo codes: %w", err)
	}

	return promos, nil
}

// Create - usage_count luôn bắt đầu từ 0
func (r *promoCodeRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	promo.Code = model.NormalizeCode(promo.Code)
	promo.UsageCount = 0

	query := `
		INSERT INTO promo_codes (
			id, code, influencer_id,
			discount_type, discount_value,
			usage_limit, usage_count, expires_at, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		promo.ID,
		promo.Code,
		promo.InfluencerID,
		promo.DiscountType,
		promo.DiscountValue,
		promo.UsageLimit,
		promo.ExpiresAt,
		promo.Active,
	).Scan(&promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrPromoCodeExists
		}
		if isForeignKeyViolation(err) {
			return model.ErrInfluencerNotFound
		}
		return fmt.Errorf("create promo code: %w", err)
	}

	return nil
}

// Update không đụng tới usage_count, code, influencer_id
func (r *promoCodeRepository) Update(ctx context.Context, promo *model.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET discount_type = $2,
			discount_value = $3,
			usage_limit = $4,
			expires_at = $5,
			active = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING usage_count, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		promo.ID,
		promo.DiscountType,
		promo.DiscountValue,
		promo.UsageLimit,
		promo.ExpiresAt,
		promo.Active,
	).Scan(&promo.UsageCount, &promo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrPromoCodeNotFound
		}
		return fmt.Errorf("update promo code: %w", err)
	}

	return nil
}
