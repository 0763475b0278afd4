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

type commissionRepository struct {
	db *pgxpool.Pool
}

func NewCommissionRepository(db *pgxpool.Pool) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) q(tx pgx.Tx) DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

const commissionColumns = `
	id, influencer_id, order_id, commission_amount, status, created_at, updated_at`

func scanCommission(row pgx.Row) (*model.Commission, error) {
	var c model.Commission
	err := row.Scan(
		&c.ID, &c.InfluencerID, &c.OrderID,
		&c.CommissionAmount, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create chạy trong transaction của order, unique(order_id) chặn commission thứ hai
func (r *commissionRepository) Create(ctx context.Context, tx pgx.Tx, commission *model.Commission) error {
	if commission.ID == uuid.Nil {
		commission.ID = uuid.New()
	}

	query := `
		INSERT INTO commissions (
			id, influencer_id, order_id, commission_amount, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	_, err := r.q(tx).Exec(ctx, query,
		commission.ID,
		commission.InfluencerID,
		commission.OrderID,
		commission.CommissionAmount,
		commission.Status,
		commission.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}

	commission.UpdatedAt = commission.CreatedAt
	return nil
}

func (r *commissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1`

	commission, err := scanCommission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommissionNotFound
		}
		return nil, fmt.Errorf("find commission by id: %w", err)
	}
	return commission, nil
}

// List - filter đã Normalize() ở service
func (r *commissionRepository) List(ctx context.Context, filter *model.ListCommissionsFilter) ([]*model.Commission, int, error) {
	whereClauses := []string{}
	args := []any{}

	if filter.InfluencerID != "" {
		args = append(args, filter.InfluencerID)
		whereClauses = append(whereClauses, fmt.Sprintf("influencer_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", len(args)))
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM commissions %s`, whereSQL)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count commissions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM commissions
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, commissionColumns, whereSQL, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	commissions := []*model.Commission{}
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan commission: %w", err)
		}
		commissions = append(commissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate commissions: %w", err)
	}

	return commissions, total, nil
}

// UpdateStatus - compare-and-set trên status
func (r *commissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, now time.Time) (bool, error) {
	query := `
		UPDATE commissions
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	tag, err := r.db.Exec(ctx, query, id, from, to, now)
	if err != nil {
		return false, fmt.Errorf("update commission status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
