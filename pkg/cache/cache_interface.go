package cache

import (
	"context"
	"time"
)

// Cache là contract tối thiểu mà report cache cần.
// Value được serialize thành JSON, nên dest của Get phải là pointer.
type Cache interface {
	// Get trả found=false khi miss, dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern dùng glob kiểu Redis, vd "report:influencers:*"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
