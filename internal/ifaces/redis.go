package ifaces

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is an interface which mocks the subset of the Redis client that we use
// in the delay store.
//
//go:generate mockery --inpackage --name Redis --filename mock_redis.go
type Redis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
