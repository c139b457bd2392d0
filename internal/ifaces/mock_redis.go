package ifaces

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockRedis is a mock implementation of Redis.
type MockRedis struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	ret := _m.Called(ctx, key)

	var r0 *redis.StringCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.StringCmd)
	}

	return r0
}

// Set provides a mock function with given fields: ctx, key, value, expiration
func (_m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ret := _m.Called(ctx, key, value, expiration)

	var r0 *redis.StatusCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.StatusCmd)
	}

	return r0
}

// Del provides a mock function with given fields: ctx, keys
func (_m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	ret := _m.Called(ctx, keys)

	var r0 *redis.IntCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.IntCmd)
	}

	return r0
}
