package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type OrderRepository interface {
	// Ghi trong transaction của checkout
	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateOrderItemsWithTx(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetOrderByNumber trả về order kèm items
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}
