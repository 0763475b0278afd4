package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cần Redis thật: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	c := NewRedisCache(addr, os.Getenv("TEST_REDIS_PASSWORD"), 15)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() {
		_ = c.DeletePattern(context.Background(), "test:*")
		_ = c.Close()
	})
	return c
}

type reportRow struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	var out []reportRow
	found, err := c.Get(ctx, "test:missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := []reportRow{{Name: "Linh", Total: "90.00"}}
	require.NoError(t, c.Set(ctx, "test:report", in, time.Minute))

	found, err = c.Get(ctx, "test:report", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "test:report:a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "test:report:b", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "test:other", 3, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "test:report:*"))

	var v int
	found, err := c.Get(ctx, "test:report:a", &v)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(ctx, "test:other", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, v)
}
