package service

import (
	"context"

	influencer "storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER SERVICE INTERFACE
// =====================================================
type OrderService interface {
	// CreateOrder: promo consume + order + commission trong một transaction
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error)

	// GetOrderByNumber - order tracking
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}

// PromoResolver là phần của influencer resolver mà checkout cần
type PromoResolver interface {
	ResolvePromoAndCommission(ctx context.Context, in influencer.ResolveInput) (*influencer.PromoResolution, error)
	CreateCommissionRecord(ctx context.Context, in influencer.CreateCommissionInput) (*influencer.Commission, error)
}
