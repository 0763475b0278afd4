package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	influencer "storefront-backend/internal/domains/influencer/model"
	influencerService "storefront-backend/internal/domains/influencer/service"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/infrastructure/events"
	"storefront-backend/internal/infrastructure/metrics"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/idgen"
	"storefront-backend/pkg/logger"
)

const (
	maxOrderNumberAttempts = 3
	publishTimeout         = 5 * time.Second
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	db          database.TxBeginner
	orderRepo   repository.OrderRepository
	resolver    PromoResolver
	reportCache influencerService.PerformanceCacheInvalidator
	publisher   events.Publisher
	metrics     *metrics.CheckoutMetrics
	orderSuffix idgen.Generator
	now         func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	db database.TxBeginner,
	orderRepo repository.OrderRepository,
	resolver PromoResolver,
	reportCache influencerService.PerformanceCacheInvalidator,
	publisher events.Publisher,
	m *metrics.CheckoutMetrics,
	orderSuffix idgen.Generator,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		resolver:    resolver,
		reportCache: reportCache,
		publisher:   publisher,
		metrics:     m,
		orderSuffix: orderSuffix,
		now:         time.Now,
	}
}

// checkoutResult - output của transaction, dùng cho post-commit side effects
type checkoutResult struct {
	order      *model.Order
	resolution *influencer.PromoResolution
	commission *influencer.Commission
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder
//
// Transaction: resolver (consume promo) → insert order → insert items → commission.
// Lỗi promo code được trả nguyên để handler map sang message cho user.
// Publish event + invalidate report cache chỉ chạy sau khi commit.
func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	// Step 1: Validate request
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if err := req.Validate(); err != nil {
		return nil, model.NewOrderError(model.ErrCodeInvalidOrder, "Invalid order request", err)
	}

	// Step 2: Subtotal từ line items
	subtotal := model.CalculateSubtotal(req.Items)
	now := s.now()

	// Step 3: Transaction, retry khi trùng order number (tx cũ đã rollback sạch)
	var result *checkoutResult
	var err error
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		orderNumber := model.FormatOrderNumber(now, s.orderSuffix())

		result, err = database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*checkoutResult, error) {
			return s.createOrderTx(ctx, tx, req, subtotal, orderNumber, now)
		})
		if !errors.Is(err, model.ErrDuplicateOrderNumber) {
			break
		}
		logger.Warn("Order number collision, retrying", map[string]interface{}{
			"order_number": orderNumber,
			"attempt":      attempt,
		})
	}
	if err != nil {
		return nil, err
	}

	// Step 4: Post-commit side effects, lỗi chỉ log
	s.afterCommit(ctx, result)

	order := result.order
	resp := &model.CreateOrderResponse{
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		Status:           order.Status,
		Subtotal:         influencerService.ToMoney(order.Subtotal),
		DiscountAmount:   result.resolution.DiscountAmount,
		Total:            influencerService.ToMoney(order.Total),
		PromoCodeApplied: result.resolution.PromoCodeApplied,
		InfluencerID:     result.resolution.InfluencerID,
		CommissionAmount: result.resolution.CommissionAmount,
	}
	if result.commission != nil {
		id := result.commission.ID
		resp.CommissionID = &id
	}

	return resp, nil
}

func (s *orderService) createOrderTx(
	ctx context.Context,
	tx pgx.Tx,
	req model.CreateOrderRequest,
	subtotal decimal.Decimal,
	orderNumber string,
	now time.Time,
) (*checkoutResult, error) {
	referral := req.Referral()
	if referral == nil && req.RefInfluencerID != "" {
		logger.Debug("Referral id is not a UUID, ignored", map[string]interface{}{
			"ref_influencer_id": req.RefInfluencerID,
			"order_number":      orderNumber,
		})
	}

	resolution, err := s.resolver.ResolvePromoAndCommission(ctx, influencer.ResolveInput{
		Tx:             tx,
		PromoCodeInput: req.PromoCode,
		Referral:       referral,
		Subtotal:       subtotal,
		Now:            now,
	})
	if err != nil {
		return nil, err
	}

	discount := influencerService.ToNumber(resolution.DiscountAmount)
	order := &model.Order{
		ID:             uuid.New(),
		OrderNumber:    orderNumber,
		CustomerEmail:  req.CustomerEmail,
		CustomerName:   req.CustomerName,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          model.CalculateTotal(subtotal, discount),
		PromoCodeID:    resolution.PromoCodeID,
		PromoCode:      resolution.PromoCodeApplied,
		InfluencerID:   resolution.InfluencerID,
		PaymentMethod:  req.PaymentMethod,
		Status:         model.OrderStatusPending,
		CreatedAt:      now,
	}

	if err := s.orderRepo.CreateOrderWithTx(ctx, tx, order); err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductName: strings.TrimSpace(item.ProductName),
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	if err := s.orderRepo.CreateOrderItemsWithTx(ctx, tx, items); err != nil {
		return nil, err
	}
	order.Items = items

	commission, err := s.resolver.CreateCommissionRecord(ctx, influencer.CreateCommissionInput{
		Tx:               tx,
		InfluencerID:     resolution.InfluencerID,
		OrderID:          order.ID,
		CommissionAmount: resolution.CommissionAmount,
		Now:              now,
	})
	if err != nil {
		return nil, err
	}

	return &checkoutResult{
		order:      order,
		resolution: resolution,
		commission: commission,
	}, nil
}

func (s *orderService) afterCommit(ctx context.Context, result *checkoutResult) {
	order := result.order

	s.metrics.RecordOrder(order.Source(), order.PaymentMethod, order.DiscountAmount.InexactFloat64())
	if order.PromoCodeID != nil {
		s.metrics.RecordRedemption(metrics.OutcomeRedeemed)
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":          order.ID.String(),
		"order_number":      order.OrderNumber,
		"source":            order.Source(),
		"discount_amount":   result.resolution.DiscountAmount,
		"commission_amount": result.resolution.CommissionAmount,
	})

	if order.InfluencerID != nil && s.reportCache != nil {
		s.reportCache.InvalidatePerformanceCache(ctx)
	}

	commission := result.commission
	if commission == nil {
		return
	}

	s.metrics.RecordCommission(order.Source(), commission.CommissionAmount.InexactFloat64())

	if s.publisher == nil {
		return
	}
	event := events.CommissionCreatedEvent{
		CommissionID:     commission.ID.String(),
		InfluencerID:     commission.InfluencerID.String(),
		OrderID:          order.ID.String(),
		OrderNumber:      order.OrderNumber,
		CommissionAmount: influencerService.ToMoney(commission.CommissionAmount),
		Status:           commission.Status,
		CreatedAt:        commission.CreatedAt,
	}
	// order đã commit, client ngắt kết nối không được hủy publish
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishCommissionCreated(pubCtx, event); err != nil {
		logger.Error(fmt.Sprintf("Publish commission event failed for order %s", order.OrderNumber), err)
	}
}

// =====================================================
// GET ORDER
// =====================================================

func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if orderNumber == "" {
		return nil, model.ErrOrderNotFound
	}
	return s.orderRepo.GetOrderByNumber(ctx, orderNumber)
}
