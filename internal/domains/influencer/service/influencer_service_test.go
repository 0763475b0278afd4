package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/influencer/model"
	"storefront-backend/internal/domains/influencer/repository"
	"storefront-backend/internal/domains/influencer/repository/repotest"
	"storefront-backend/internal/infrastructure/metrics"
)

// memoryCache giữ JSON giống Redis cache để test cả đường marshal
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return false, c.failGet
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func TestCreateInfluencer_Defaults(t *testing.T) {
	store := repotest.NewStore()
	svc := NewInfluencerService(store.InfluencerRepository(), nil, 0, nil)

	created, err := svc.CreateInfluencer(context.Background(), &model.CreateInfluencerRequest{
		Name:            "  Linh Tran ",
		Email:           "Linh@Example.com",
		CommissionType:  model.AmountTypePercentage,
		CommissionValue: 12.345,
	})
	require.NoError(t, err)

	assert.Equal(t, "Linh Tran", created.Name)
	assert.Equal(t, "linh@example.com", created.Email)
	assert.Equal(t, model.InfluencerStatusActive, created.Status)
	assert.Equal(t, "12.35", created.CommissionValue.StringFixed(2))

	_, err = svc.CreateInfluencer(context.Background(), &model.CreateInfluencerRequest{
		Name:           "Someone",
		Email:          "LINH@example.com",
		CommissionType: model.AmountTypeFixed,
	})
	assert.ErrorIs(t, err, model.ErrInfluencerEmailExists)
}

func TestUpdateInfluencer_PercentageCap(t *testing.T) {
	store := repotest.NewStore()
	svc := NewInfluencerService(store.InfluencerRepository(), nil, 0, nil)

	existing := store.AddInfluencer(model.Influencer{
		Name:            "Fixed Rate",
		Email:           "fixed@example.com",
		CommissionType:  model.AmountTypeFixed,
		CommissionValue: d("150.00"),
	})

	switchType := model.AmountTypePercentage
	_, err := svc.UpdateInfluencer(context.Background(), existing.ID, &model.UpdateInfluencerRequest{CommissionType: &switchType})
	assert.ErrorIs(t, err, model.ErrPercentageTooLarge)

	value := 15.0
	updated, err := svc.UpdateInfluencer(context.Background(), existing.ID, &model.UpdateInfluencerRequest{
		CommissionType:  &switchType,
		CommissionValue: &value,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AmountTypePercentage, updated.CommissionType)
	assert.Equal(t, model.InfluencerStatusActive, updated.Status)
}

func TestGetInfluencerPerformance_CacheHitAndInvalidate(t *testing.T) {
	store := repotest.NewStore()
	c := newMemoryCache()
	m := metrics.NewCheckoutMetrics(prometheus.NewRegistry())
	svc := NewInfluencerService(store.InfluencerRepository(), c, time.Minute, m)
	ctx := context.Background()

	creator := store.AddInfluencer(model.Influencer{Name: "Creator", Email: "c@example.com"})
	store.AddOrder(creator.ID, "90.00", "10.00", fixedNow)

	first, err := svc.GetInfluencerPerformance(ctx, model.PerformanceFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].TotalOrders)
	assert.Equal(t, 1, c.len())
	assert.Equal(t, time.Minute, c.ttls[performanceCacheKey(nil, nil)])

	// order mới chưa thấy được cho tới khi invalidate
	store.AddOrder(creator.ID, "45.00", "0.00", fixedNow)
	cached, err := svc.GetInfluencerPerformance(ctx, model.PerformanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, cached[0].TotalOrders)

	svc.InvalidatePerformanceCache(ctx)
	assert.Equal(t, 0, c.len())

	fresh, err := svc.GetInfluencerPerformance(ctx, model.PerformanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, fresh[0].TotalOrders)
	assert.Equal(t, "135", fresh[0].TotalRevenue)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ReportCacheTotal.WithLabelValues("miss")))
}

// invalidatingRepo gọi beforeRead giữa lúc report đang đọc DB
type invalidatingRepo struct {
	repository.InfluencerRepository
	beforeRead func()
}

func (r *invalidatingRepo) GetPerformance(ctx context.Context, from, to *time.Time) ([]*model.InfluencerPerformance, error) {
	report, err := r.InfluencerRepository.GetPerformance(ctx, from, to)
	if r.beforeRead != nil {
		r.beforeRead()
		r.beforeRead = nil
	}
	return report, err
}

func TestGetInfluencerPerformance_InvalidateDuringReadSkipsCacheWrite(t *testing.T) {
	store := repotest.NewStore()
	c := newMemoryCache()
	repo := &invalidatingRepo{InfluencerRepository: store.InfluencerRepository()}
	svc := NewInfluencerService(repo, c, time.Minute, nil)
	ctx := context.Background()

	creator := store.AddInfluencer(model.Influencer{Name: "Creator", Email: "c@example.com"})
	store.AddOrder(creator.ID, "90.00", "10.00", fixedNow)

	// order commit + invalidate xảy ra sau khi query đã lấy snapshot
	repo.beforeRead = func() {
		store.AddOrder(creator.ID, "45.00", "0.00", fixedNow)
		svc.InvalidatePerformanceCache(ctx)
	}

	stale, err := svc.GetInfluencerPerformance(ctx, model.PerformanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, stale[0].TotalOrders)
	assert.Equal(t, 0, c.len())

	fresh, err := svc.GetInfluencerPerformance(ctx, model.PerformanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, fresh[0].TotalOrders)
	assert.Equal(t, 1, c.len())
}

func TestGetInfluencerPerformance_CacheErrorFallsBack(t *testing.T) {
	store := repotest.NewStore()
	c := newMemoryCache()
	c.failGet = errors.New("redis down")
	svc := NewInfluencerService(store.InfluencerRepository(), c, time.Minute, nil)

	store.AddInfluencer(model.Influencer{Name: "Creator", Email: "c@example.com"})

	report, err := svc.GetInfluencerPerformance(context.Background(), model.PerformanceFilter{})
	require.NoError(t, err)
	assert.Len(t, report, 1)
}

func TestGetInfluencerPerformance_EmptyWindowKeepsRow(t *testing.T) {
	store := repotest.NewStore()
	svc := NewInfluencerService(store.InfluencerRepository(), nil, 0, nil)

	creator := store.AddInfluencer(model.Influencer{Name: "Creator", Email: "c@example.com"})
	store.AddOrder(creator.ID, "90.00", "10.00", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store.AddCommission(model.Commission{
		InfluencerID:     creator.ID,
		OrderID:          uuid.New(),
		CommissionAmount: d("5.00"),
		Status:           model.CommissionStatusPending,
		CreatedAt:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	report, err := svc.GetInfluencerPerformance(context.Background(), model.PerformanceFilter{
		From: "2026-01-01",
		To:   "2026-02-01",
	})
	require.NoError(t, err)
	require.Len(t, report, 1)

	row := report[0]
	assert.Equal(t, creator.ID, row.InfluencerID)
	assert.Equal(t, 0, row.TotalOrders)
	assert.Equal(t, "0", row.TotalRevenue)
	assert.Equal(t, "0", row.TotalDiscount)
	assert.Equal(t, "0", row.PendingCommission)
	assert.Equal(t, "0", row.PaidCommission)
}

func TestPerformanceCacheKey(t *testing.T) {
	from := time.Date(2026, 1, 1, 7, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	assert.Equal(t, "report:influencers:-:-", performanceCacheKey(nil, nil))
	assert.Equal(t, "report:influencers:2026-01-01T00:00:00Z:-", performanceCacheKey(&from, nil))
}
