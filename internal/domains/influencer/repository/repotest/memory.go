// Package repotest là in-memory implementation của influencer repositories cho unit test
//
// Store dùng một mutex cho mọi bảng nên IncrementUsage có cùng ngữ nghĩa
// với conditional UPDATE của Postgres: predicate được check và ghi trong một bước.
// Tx bị bỏ qua, rollback không hoàn tác dữ liệu đã ghi.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
)

// Store giữ dữ liệu dùng chung giữa các fake repository
type Store struct {
	mu          sync.Mutex
	influencers map[uuid.UUID]model.Influencer
	promos      map[uuid.UUID]model.PromoCode
	commissions map[uuid.UUID]model.Commission
	orders      []orderRow

	// Err != nil thì mọi method trả về lỗi này
	Err error
}

type orderRow struct {
	influencerID uuid.UUID
	total        string
	discount     string
	createdAt    time.Time
}

func NewStore() *Store {
	return &Store{
		influencers: map[uuid.UUID]model.Influencer{},
		promos:      map[uuid.UUID]model.PromoCode{},
		commissions: map[uuid.UUID]model.Commission{},
	}
}

// -------------------------------------------------------------------
// SEED HELPERS
// -------------------------------------------------------------------

func (s *Store) AddInfluencer(i model.Influencer) model.Influencer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = model.InfluencerStatusActive
	}
	s.influencers[i.ID] = i
	return i
}

func (s *Store) AddPromoCode(p model.PromoCode) model.PromoCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Code = model.NormalizeCode(p.Code)
	s.promos[p.ID] = p
	return p
}

func (s *Store) AddCommission(c model.Commission) model.Commission {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.commissions[c.ID] = c
	return c
}

// AddOrder ghi nhận order attribute cho influencer, dùng cho performance report
func (s *Store) AddOrder(influencerID uuid.UUID, total, discount string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orderRow{influencerID, total, discount, createdAt})
}

func (s *Store) PromoCode(id uuid.UUID) model.PromoCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promos[id]
}

func (s *Store) Commissions() []model.Commission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Commission, 0, len(s.commissions))
	for _, c := range s.commissions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// -------------------------------------------------------------------
// REPOSITORIES
// -------------------------------------------------------------------

func (s *Store) InfluencerRepository() repository.InfluencerRepository { return influencerRepo{s} }
func (s *Store) PromoCodeRepository() repository.PromoCodeRepository   { return promoRepo{s} }
func (s *Store) CommissionRepository() repository.CommissionRepository { return commissionRepo{s} }

type influencerRepo struct{ s *Store }

func (r influencerRepo) FindByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*model.Influencer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	i, ok := r.s.influencers[id]
	if !ok {
		return nil, model.ErrInfluencerNotFound
	}
	return &i, nil
}

func (r influencerRepo) List(_ context.Context, status string) ([]*model.Influencer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*model.Influencer{}
	for _, i := range r.s.influencers {
		if status == "" || i.Status == status {
			i := i
			out = append(out, &i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r influencerRepo) Create(_ context.Context, influencer *model.Influencer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.influencers {
		if strings.EqualFold(existing.Email, influencer.Email) {
			return model.ErrInfluencerEmailExists
		}
	}
	if influencer.ID == uuid.Nil {
		influencer.ID = uuid.New()
	}
	influencer.CreatedAt = time.Now()
	influencer.UpdatedAt = influencer.CreatedAt
	r.s.influencers[influencer.ID] = *influencer
	return nil
}

func (r influencerRepo) Update(_ context.Context, influencer *model.Influencer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	current, ok := r.s.influencers[influencer.ID]
	if !ok {
		return model.ErrInfluencerNotFound
	}
	for id, existing := range r.s.influencers {
		if id != influencer.ID && strings.EqualFold(existing.Email, influencer.Email) {
			return model.ErrInfluencerEmailExists
		}
	}
	influencer.Status = current.Status
	influencer.CreatedAt = current.CreatedAt
	influencer.UpdatedAt = time.Now()
	r.s.influencers[influencer.ID] = *influencer
	return nil
}

func (r influencerRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	i, ok := r.s.influencers[id]
	if !ok {
		return model.ErrInfluencerNotFound
	}
	i.Status = status
	r.s.influencers[id] = i
	return nil
}

func (r influencerRepo) GetPerformance(_ context.Context, from, to *time.Time) ([]*model.InfluencerPerformance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}

	inWindow := func(t time.Time) bool {
		if from != nil && t.Before(*from) {
			return false
		}
		if to != nil && t.After(*to) {
			return false
		}
		return true
	}

	out := []*model.InfluencerPerformance{}
	for _, i := range r.s.influencers {
		row := &model.InfluencerPerformance{
			InfluencerID: i.ID,
			Name:         i.Name,
			Email:        i.Email,
			Status:       i.Status,
		}

		revenue, discount := newSum(), newSum()
		for _, o := range r.s.orders {
			if o.influencerID == i.ID && inWindow(o.createdAt) {
				row.TotalOrders++
				revenue.add(o.total)
				discount.add(o.discount)
			}
		}

		pending, paid := newSum(), newSum()
		for _, c := range r.s.commissions {
			if c.InfluencerID != i.ID || !inWindow(c.CreatedAt) {
				continue
			}
			switch c.Status {
			case model.CommissionStatusPending:
				pending.addDecimal(c.CommissionAmount)
			case model.CommissionStatusPaid:
				paid.addDecimal(c.CommissionAmount)
			}
		}

		row.TotalRevenue = revenue.String()
		row.TotalDiscount = discount.String()
		row.PendingCommission = pending.String()
		row.PaidCommission = paid.String()
		out = append(out, row)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

type promoRepo struct{ s *Store }

func (r promoRepo) FindWithInfluencer(_ context.Context, _ pgx.Tx, code string) (*model.PromoCodeWithInfluencer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, p := range r.s.promos {
		if p.Code != code {
			continue
		}
		i, ok := r.s.influencers[p.InfluencerID]
		if !ok {
			return nil, model.ErrPromoCodeNotFound
		}
		return &model.PromoCodeWithInfluencer{
			PromoCode:                 p,
			InfluencerStatus:          i.Status,
			InfluencerCommissionType:  i.CommissionType,
			InfluencerCommissionValue: i.CommissionValue,
		}, nil
	}
	return nil, model.ErrPromoCodeNotFound
}

// IncrementUsage - cùng predicate với SQL, check và ghi dưới một lock
func (r promoRepo) IncrementUsage(_ context.Context, _ pgx.Tx, id uuid.UUID, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return false, r.s.Err
	}
	p, ok := r.s.promos[id]
	if !ok || !p.Active {
		return false, nil
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false, nil
	}
	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return false, nil
	}

	p.UsageCount++
	p.UpdatedAt = now
	r.s.promos[id] = p
	return true, nil
}

func (r promoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PromoCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.promos[id]
	if !ok {
		return nil, model.ErrPromoCodeNotFound
	}
	return &p, nil
}

func (r promoRepo) List(_ context.Context, influencerID *uuid.UUID, active *bool) ([]*model.PromoCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*model.PromoCode{}
	for _, p := range r.s.promos {
		if influencerID != nil && p.InfluencerID != *influencerID {
			continue
		}
		if active != nil && p.Active != *active {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	return out, nil
}

func (r promoRepo) Create(_ context.Context, promo *model.PromoCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	promo.Code = model.NormalizeCode(promo.Code)
	for _, existing := range r.s.promos {
		if existing.Code == promo.Code {
			return model.ErrPromoCodeExists
		}
	}
	if _, ok := r.s.influencers[promo.InfluencerID]; !ok {
		return model.ErrInfluencerNotFound
	}
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	promo.UsageCount = 0
	promo.CreatedAt = time.Now()
	promo.UpdatedAt = promo.CreatedAt
	r.s.promos[promo.ID] = *promo
	return nil
}

func (r promoRepo) Update(_ context.Context, promo *model.PromoCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	current, ok := r.s.promos[promo.ID]
	if !ok {
		return model.ErrPromoCodeNotFound
	}
	current.DiscountType = promo.DiscountType
	current.DiscountValue = promo.DiscountValue
	current.UsageLimit = promo.UsageLimit
	current.ExpiresAt = promo.ExpiresAt
	current.Active = promo.Active
	current.UpdatedAt = time.Now()
	r.s.promos[promo.ID] = current

	promo.UsageCount = current.UsageCount
	promo.UpdatedAt = current.UpdatedAt
	return nil
}

type commissionRepo struct{ s *Store }

func (r commissionRepo) Create(_ context.Context, _ pgx.Tx, commission *model.Commission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.commissions {
		if existing.OrderID == commission.OrderID {
			return errDuplicateOrder
		}
	}
	if commission.ID == uuid.Nil {
		commission.ID = uuid.New()
	}
	r.s.commissions[commission.ID] = *commission
	return nil
}

func (r commissionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.commissions[id]
	if !ok {
		return nil, model.ErrCommissionNotFound
	}
	return &c, nil
}

func (r commissionRepo) List(_ context.Context, filter *model.ListCommissionsFilter) ([]*model.Commission, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}
	matched := []*model.Commission{}
	for _, c := range r.s.commissions {
		if filter.InfluencerID != "" && c.InfluencerID.String() != filter.InfluencerID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		c := c
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(a, b int) bool { return matched[a].CreatedAt.After(matched[b].CreatedAt) })

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r commissionRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Err != nil {
		return false, r.s.Err
	}
	c, ok := r.s.commissions[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	c.UpdatedAt = now
	r.s.commissions[id] = c
	return true, nil
}
