package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
)

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository creates order repository
func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, customer_email, customer_name,
			subtotal, discount_amount, total,
			promo_code_id, promo_code, influencer_id,
			payment_method, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerEmail,
		order.CustomerName,
		order.Subtotal,
		order.DiscountAmount,
		order.Total,
		order.PromoCodeID,
		order.PromoCode,
		order.InfluencerID,
		order.PaymentMethod,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	order.UpdatedAt = order.CreatedAt
	return nil
}

// CreateOrderItemsWithTx - batch insert trong một round trip
func (r *postgresOrderRepository) CreateOrderItemsWithTx(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductName, item.UnitPrice, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresOrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := `
		SELECT
			id, order_number, customer_email, customer_name,
			subtotal, discount_amount, total,
			promo_code_id, promo_code, influencer_id,
			payment_method, status, created_at, updated_at
		FROM orders
		WHERE order_number = $1
	`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, orderNumber).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerEmail, &o.CustomerName,
		&o.Subtotal, &o.DiscountAmount, &o.Total,
		&o.PromoCodeID, &o.PromoCode, &o.InfluencerID,
		&o.PaymentMethod, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}

	items, err := r.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name ASC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}
