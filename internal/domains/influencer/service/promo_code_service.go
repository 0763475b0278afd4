package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
	"storefront-backend/pkg/idgen"
	"storefront-backend/pkg/logger"
)

const maxGeneratedCodeAttempts = 3

type promoCodeService struct {
	repo           repository.PromoCodeRepository
	influencerRepo repository.InfluencerRepository
	generateCode   idgen.Generator
	now            func() time.Time
}

func NewPromoCodeService(
	repo repository.PromoCodeRepository,
	influencerRepo repository.InfluencerRepository,
	generateCode idgen.Generator,
) PromoCodeService {
	return &promoCodeService{
		repo:           repo,
		influencerRepo: influencerRepo,
		generateCode:   generateCode,
		now:            time.Now,
	}
}

// CreatePromoCode - code rỗng thì sinh bằng nanoid, thử lại khi trùng
func (s *promoCodeService) CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	influencerID, err := uuid.Parse(req.InfluencerID)
	if err != nil {
		return nil, model.ErrInfluencerNotFound
	}
	if _, err := s.influencerRepo.FindByID(ctx, nil, influencerID); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	promo := &model.PromoCode{
		InfluencerID:  influencerID,
		DiscountType:  req.DiscountType,
		DiscountValue: decimal.NewFromFloat(req.DiscountValue).Round(2),
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ParsedExpiresAt(),
		Active:        active,
	}

	req.NormalizeCode()
	if req.Code != "" {
		promo.Code = req.Code
		if err := s.repo.Create(ctx, promo); err != nil {
			return nil, err
		}
		s.logCreated(promo)
		return promo, nil
	}

	for attempt := 1; attempt <= maxGeneratedCodeAttempts; attempt++ {
		promo.ID = uuid.Nil
		promo.Code = s.generateCode()

		err := s.repo.Create(ctx, promo)
		if err == nil {
			s.logCreated(promo)
			return promo, nil
		}
		if !errors.Is(err, model.ErrPromoCodeExists) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("generate unique promo code after %d attempts: %w", maxGeneratedCodeAttempts, model.ErrPromoCodeExists)
}

func (s *promoCodeService) logCreated(promo *model.PromoCode) {
	logger.Info("Promo code created", map[string]interface{}{
		"promo_code_id": promo.ID.String(),
		"code":          promo.Code,
		"influencer_id": promo.InfluencerID.String(),
	})
}

// UpdatePromoCode - usage_count không bao giờ bị sửa qua đây
func (s *promoCodeService) UpdatePromoCode(ctx context.Context, id uuid.UUID, req *model.UpdatePromoCodeRequest) (*model.PromoCode, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscountType != nil {
		promo.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		promo.DiscountValue = decimal.NewFromFloat(*req.DiscountValue).Round(2)
	}
	if promo.DiscountType == model.AmountTypePercentage && promo.DiscountValue.GreaterThan(hundred) {
		return nil, model.ErrPercentageTooLarge
	}

	switch {
	case req.ClearUsageLimit:
		promo.UsageLimit = nil
	case req.UsageLimit != nil:
		// không hạ limit xuống dưới số lượt đã dùng (vi phạm CHECK constraint)
		if *req.UsageLimit < promo.UsageCount {
			return nil, model.ErrUsageLimitBelowCount
		}
		promo.UsageLimit = req.UsageLimit
	}

	switch {
	case req.ClearExpiresAt:
		promo.ExpiresAt = nil
	case req.ExpiresAt != nil:
		promo.ExpiresAt = req.ParsedExpiresAt()
	}

	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// DeactivatePromoCode - retire code, không xóa để giữ lịch sử order
func (s *promoCodeService) DeactivatePromoCode(ctx context.Context, id uuid.UUID) error {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !promo.Active {
		return nil
	}

	promo.Active = false
	if err := s.repo.Update(ctx, promo); err != nil {
		return err
	}

	logger.Info("Promo code deactivated", map[string]interface{}{
		"promo_code_id": id.String(),
		"code":          promo.Code,
	})
	return nil
}

func (s *promoCodeService) GetPromoCode(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *promoCodeService) ListPromoCodes(ctx context.Context, filter *model.ListPromoCodesFilter) ([]*model.PromoCode, error) {
	var influencerID *uuid.UUID
	if filter.InfluencerID != "" {
		id, err := uuid.Parse(filter.InfluencerID)
		if err != nil {
			return nil, model.ErrInfluencerNotFound
		}
		influencerID = &id
	}
	return s.repo.List(ctx, influencerID, filter.Active)
}

// PreviewPromoCode - cùng thứ tự validate như checkout, thêm check usage limit lúc đọc
// Kết quả chỉ mang tính tham khảo: checkout vẫn có thể fail nếu lượt cuối bị lấy mất
func (s *promoCodeService) PreviewPromoCode(ctx context.Context, code string, subtotal decimal.Decimal) (*model.PromoPreviewResponse, error) {
	normalized := model.NormalizeCode(code)
	if normalized == "" {
		return nil, model.ErrInvalidPromoCode
	}

	promo, err := s.repo.FindWithInfluencer(ctx, nil, normalized)
	if err != nil {
		if errors.Is(err, model.ErrPromoCodeNotFound) {
			return nil, model.ErrInvalidPromoCode
		}
		return nil, err
	}

	if !promo.Active || promo.InfluencerStatus != model.InfluencerStatusActive {
		return nil, model.ErrPromoCodeInactive
	}
	if promo.IsExpired(s.now()) {
		return nil, model.ErrPromoCodeExpired
	}
	if promo.IsUsageLimitReached() {
		return nil, model.ErrPromoCodeUsageLimitReached
	}

	subtotal = nonNegative(subtotal)
	discount := clampDiscount(CalculateDiscount(subtotal, promo.DiscountType, promo.DiscountValue), subtotal)

	return &model.PromoPreviewResponse{
		Code:           promo.Code,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue.StringFixed(2),
		DiscountAmount: ToMoney(discount),
		NetTotal:       ToMoney(subtotal.Sub(discount)),
	}, nil
}
