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

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
	"storefront-backend/internal/infrastructure/metrics"
	"storefront-backend/pkg/logger"
)

// Resolver tính discount + commission cho checkout
//
// Mọi method nhận tx của order service, không tự mở transaction.
// Lỗi promo code được trả nguyên (so sánh bằng errors.Is) để caller rollback.
type Resolver struct {
	promoRepo      repository.PromoCodeRepository
	influencerRepo repository.InfluencerRepository
	commissionRepo repository.CommissionRepository
	metrics        *metrics.CheckoutMetrics
}

func NewResolver(
	promoRepo repository.PromoCodeRepository,
	influencerRepo repository.InfluencerRepository,
	commissionRepo repository.CommissionRepository,
	m *metrics.CheckoutMetrics,
) *Resolver {
	return &Resolver{
		promoRepo:      promoRepo,
		influencerRepo: influencerRepo,
		commissionRepo: commissionRepo,
		metrics:        m,
	}
}

// =====================================================
// PROMO CODE LOCK-AND-CONSUME
// =====================================================

// LockAndUsePromoCode validate rồi consume đúng 1 lượt dùng
//
// Thứ tự validate: not found → inactive (promo hoặc influencer) → expired.
// Sau đó conditional UPDATE check lại predicate lúc ghi; 0 rows = usage limit reached
// (gồm cả trường hợp thua race với request khác).
// Trả về field đọc trước khi increment, money math dùng các giá trị này.
func (r *Resolver) LockAndUsePromoCode(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.PromoCodeWithInfluencer, error) {
	normalized := model.NormalizeCode(code)
	if normalized == "" {
		r.metrics.RecordRedemption(metrics.OutcomeInvalid)
		return nil, model.ErrInvalidPromoCode
	}

	promo, err := r.promoRepo.FindWithInfluencer(ctx, tx, normalized)
	if err != nil {
		if errors.Is(err, model.ErrPromoCodeNotFound) {
			r.metrics.RecordRedemption(metrics.OutcomeInvalid)
			return nil, model.ErrInvalidPromoCode
		}
		r.metrics.RecordRedemption(metrics.OutcomeError)
		return nil, fmt.Errorf("lookup promo code: %w", err)
	}

	if !promo.Active || promo.InfluencerStatus != model.InfluencerStatusActive {
		r.metrics.RecordRedemption(metrics.OutcomeInactive)
		return nil, model.ErrPromoCodeInactive
	}

	if promo.IsExpired(now) {
		r.metrics.RecordRedemption(metrics.OutcomeExpired)
		return nil, model.ErrPromoCodeExpired
	}

	updated, err := r.promoRepo.IncrementUsage(ctx, tx, promo.ID, now)
	if err != nil {
		r.metrics.RecordRedemption(metrics.OutcomeError)
		return nil, fmt.Errorf("consume promo code: %w", err)
	}
	if !updated {
		r.metrics.RecordRedemption(metrics.OutcomeLimitReached)
		logger.Debug("Promo code conditional update matched no rows", map[string]interface{}{
			"code":        promo.Code,
			"usage_count": promo.UsageCount,
		})
		return nil, model.ErrPromoCodeUsageLimitReached
	}

	// OutcomeRedeemed chỉ ghi sau khi order commit, tx còn có thể rollback
	return promo, nil
}

// =====================================================
// REFERRAL FALLBACK
// =====================================================

// GetActiveInfluencerByID trả về nil, nil khi influencer không tồn tại hoặc inactive
// Referral link trỏ tới influencer đã tắt không được chặn checkout
func (r *Resolver) GetActiveInfluencerByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Influencer, error) {
	influencer, err := r.influencerRepo.FindByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, model.ErrInfluencerNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup referral influencer: %w", err)
	}

	if !influencer.IsActive() {
		return nil, nil
	}
	return influencer, nil
}

// =====================================================
// RESOLUTION
// =====================================================

// ResolvePromoAndCommission
//
//   - có promo code: discount clamp [0, subtotal], commission tính trên net total
//   - chỉ có referral: không discount, commission tính trên subtotal
//   - không có gì: resolution rỗng
func (r *Resolver) ResolvePromoAndCommission(ctx context.Context, in model.ResolveInput) (*model.PromoResolution, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	resolution := &model.PromoResolution{
		DiscountAmount:   ToMoney(decimal.Zero),
		CommissionAmount: ToMoney(decimal.Zero),
	}

	if strings.TrimSpace(in.PromoCodeInput) != "" {
		promo, err := r.LockAndUsePromoCode(ctx, in.Tx, in.PromoCodeInput, now)
		if err != nil {
			return nil, err
		}

		discount := clampDiscount(
			CalculateDiscount(in.Subtotal, promo.DiscountType, promo.DiscountValue),
			in.Subtotal,
		)
		netTotal := nonNegative(in.Subtotal.Sub(discount))
		commission := nonNegative(CalculateCommission(
			netTotal,
			promo.InfluencerCommissionType,
			promo.InfluencerCommissionValue,
		))

		promoID := promo.ID
		influencerID := promo.InfluencerID
		applied := promo.Code

		resolution.PromoCodeID = &promoID
		resolution.InfluencerID = &influencerID
		resolution.DiscountAmount = ToMoney(discount)
		resolution.CommissionAmount = ToMoney(commission)
		resolution.PromoCodeApplied = &applied
		return resolution, nil
	}

	if in.Referral != nil && in.Referral.RefInfluencerID != nil {
		influencer, err := r.GetActiveInfluencerByID(ctx, in.Tx, *in.Referral.RefInfluencerID)
		if err != nil {
			return nil, err
		}
		if influencer == nil {
			logger.Debug("Referral influencer missing or inactive, skipping attribution", map[string]interface{}{
				"ref_influencer_id": in.Referral.RefInfluencerID.String(),
				"ref_code":          in.Referral.RefCode,
			})
			return resolution, nil
		}

		commission := nonNegative(CalculateCommission(
			in.Subtotal,
			influencer.CommissionType,
			influencer.CommissionValue,
		))

		influencerID := influencer.ID
		resolution.InfluencerID = &influencerID
		resolution.CommissionAmount = ToMoney(commission)
	}

	return resolution, nil
}

// =====================================================
// COMMISSION RECORD
// =====================================================

// CreateCommissionRecord ghi ledger entry status pending trong cùng tx với order
// Trả về nil, nil (không insert) khi không có influencer hoặc amount <= 0
func (r *Resolver) CreateCommissionRecord(ctx context.Context, in model.CreateCommissionInput) (*model.Commission, error) {
	if in.InfluencerID == nil {
		return nil, nil
	}

	amount := ToNumber(in.CommissionAmount)
	if !amount.IsPositive() {
		return nil, nil
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	commission := &model.Commission{
		ID:               uuid.New(),
		InfluencerID:     *in.InfluencerID,
		OrderID:          in.OrderID,
		CommissionAmount: amount,
		Status:           model.CommissionStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := r.commissionRepo.Create(ctx, in.Tx, commission); err != nil {
		return nil, fmt.Errorf("create commission record: %w", err)
	}

	return commission, nil
}
