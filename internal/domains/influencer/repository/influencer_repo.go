package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/influencer/model"
)

type influencerRepository struct {
	db *pgxpool.Pool
}

func NewInfluencerRepository(db *pgxpool.Pool) InfluencerRepository {
	return &influencerRepository{db: db}
}

func (r *influencerRepository) q(tx pgx.Tx) DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

const influencerColumns = `
	id, name, email, commission_type, commission_value, status, created_at, updated_at`

func scanInfluencer(row pgx.Row) (*model.Influencer, error) {
	var i model.Influencer
	err := row.Scan(
		&i.ID, &i.Name, &i.Email,
		&i.CommissionType, &i.CommissionValue,
		&i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// FindByID - tx có thể nil khi gọi từ admin API
func (r *influencerRepository) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Influencer, error) {
	query := `SELECT ` + influencerColumns + ` FROM influencers WHERE id = $1`

	influencer, err := scanInfluencer(r.q(tx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInfluencerNotFound
		}
		return nil, fmt.Errorf("find influencer by id: %w", err)
	}
	return influencer, nil
}

// List - status rỗng = tất cả
func (r *influencerRepository) List(ctx context.Context, status string) ([]*model.Influencer, error) {
	query := `
		SELECT ` + influencerColumns + `
		FROM influencers
		WHERE ($1 = '' OR status = $1)
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list influencers: %w", err)
	}
	defer rows.Close()

	influencers := []*model.Influencer{}
	for rows.Next() {
		influencer, err := scanInfluencer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		influencers = append(influencers, influencer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate influencers: %w", err)
	}

	return influencers, nil
}

func (r *influencerRepository) Create(ctx context.Context, influencer *model.Influencer) error {
	if influencer.ID == uuid.Nil {
		influencer.ID = uuid.New()
	}

	query := `
		INSERT INTO influencers (
			id, name, email, commission_type, commission_value, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		influencer.ID,
		influencer.Name,
		influencer.Email,
		influencer.CommissionType,
		influencer.CommissionValue,
		influencer.Status,
	).Scan(&influencer.CreatedAt, &influencer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrInfluencerEmailExists
		}
		return fmt.Errorf("create influencer: %w", err)
	}

	return nil
}

func (r *influencerRepository) Update(ctx context.Context, influencer *model.Influencer) error {
	query := `
		UPDATE influencers
		SET name = $2,
			email = $3,
			commission_type = $4,
			commission_value = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		influencer.ID,
		influencer.Name,
		influencer.Email,
		influencer.CommissionType,
		influencer.CommissionValue,
	).Scan(&influencer.Status, &influencer.CreatedAt, &influencer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrInfluencerNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrInfluencerEmailExists
		}
		return fmt.Errorf("update influencer: %w", err)
	}

	return nil
}

func (r *influencerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE influencers SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update influencer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInfluencerNotFound
	}
	return nil
}

// GetPerformance - mỗi metric là một correlated subquery riêng
//
// Mọi influencer đều có dòng, kể cả khi window không có order nào.
// Window inclusive ở cả hai đầu, bound nil = không giới hạn.
// Money cast sang text để giữ nguyên numeric, SUM rỗng = "0".
func (r *influencerRepository) GetPerformance(ctx context.Context, from, to *time.Time) ([]*model.InfluencerPerformance, error) {
	query := `
		SELECT
			i.id, i.name, i.email, i.status,
			(
				SELECT COUNT(*)
				FROM orders o
				WHERE o.influencer_id = i.id
				  AND ($1::timestamptz IS NULL OR o.created_at >= $1)
				  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
			) AS total_orders,
			(
				SELECT COALESCE(SUM(o.total), 0)::text
				FROM orders o
				WHERE o.influencer_id = i.id
				  AND ($1::timestamptz IS NULL OR o.created_at >= $1)
				  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
			) AS total_revenue,
			(
				SELECT COALESCE(SUM(o.discount_amount), 0)::text
				FROM orders o
				WHERE o.influencer_id = i.id
				  AND ($1::timestamptz IS NULL OR o.created_at >= $1)
				  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
			) AS total_discount,
			(
				SELECT COALESCE(SUM(c.commission_amount), 0)::text
				FROM commissions c
				WHERE c.influencer_id = i.id
				  AND c.status = 'pending'
				  AND ($1::timestamptz IS NULL OR c.created_at >= $1)
				  AND ($2::timestamptz IS NULL OR c.created_at <= $2)
			) AS pending_commission,
			(
				SELECT COALESCE(SUM(c.commission_amount), 0)::text
				FROM commissions c
				WHERE c.influencer_id = i.id
				  AND c.status = 'paid'
				  AND ($1::timestamptz IS NULL OR c.created_at >= $1)
				  AND ($2::timestamptz IS NULL OR c.created_at <= $2)
			) AS paid_commission
		FROM influencers i
		ORDER BY i.name ASC
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query influencer performance: %w", err)
	}
	defer rows.Close()

	report := []*model.InfluencerPerformance{}
	for rows.Next() {
		var p model.InfluencerPerformance
		err := rows.Scan(
			&p.InfluencerID, &p.Name, &p.Email, &p.Status,
			&p.TotalOrders,
			&p.TotalRevenue,
			&p.TotalDiscount,
			&p.PendingCommission,
			&p.PaidCommission,
		)
		if err != nil {
			return nil, fmt.Errorf("scan influencer performance: %w", err)
		}
		report = append(report, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate influencer performance: %w", err)
	}

	return report, nil
}
