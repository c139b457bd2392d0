package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// RedisDelayStore keeps delay timers as JSON documents, one key per target.
type RedisDelayStore struct {
	// Clients.
	Redis ifaces.Redis

	// Configuration.
	TTL time.Duration // zero keeps timers until they are deleted

	// Telemetry.
	Tracer trace.Tracer

	closer func() error
}

// NewRedisDelayStore connects to the configured Redis database. The
// connection is lazy, so errors only show up on the first command.
func NewRedisDelayStore(cfg *RuntimeConfig) *RedisDelayStore {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisDelayStore{
		Redis:  client,
		TTL:    cfg.DelayTimerTTL,
		Tracer: otel.Tracer(tracerName),
		closer: client.Close,
	}
}

func (s *RedisDelayStore) Get(ctx context.Context, targetID string) (timer DelayTimer, found bool, err error) {
	ctx, span := s.Tracer.Start(ctx, "redis.delaytimer.get")
	defer span.End()

	key := delayTimerKey(targetID)
	span.SetAttributes(attribute.String("key", key))

	var raw string

	raw, err = s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return timer, false, nil
	}

	if err != nil {
		err = fmt.Errorf("%w: could not get %s: %w", ErrStoreUnavailable, key, err)
		return timer, false, err
	}

	if err = json.Unmarshal([]byte(raw), &timer); err != nil {
		err = fmt.Errorf("%w: could not decode %s: %w", ErrDelayTimerCorrupt, key, err)
		return DelayTimer{}, false, err
	}

	if timer.FirstSeenAt.IsZero() {
		err = fmt.Errorf("%w: %s has no first seen time", ErrDelayTimerCorrupt, key)
		return DelayTimer{}, false, err
	}

	span.SetAttributes(attribute.Int("candidate_workers", timer.CandidateWorkers))

	return timer, true, nil
}

func (s *RedisDelayStore) Set(ctx context.Context, targetID string, timer DelayTimer) (err error) {
	ctx, span := s.Tracer.Start(ctx, "redis.delaytimer.set")
	defer span.End()

	key := delayTimerKey(targetID)
	span.SetAttributes(
		attribute.String("key", key),
		attribute.Int("candidate_workers", timer.CandidateWorkers),
	)

	var payload []byte

	if payload, err = json.Marshal(timer); err != nil {
		return fmt.Errorf("could not encode delay timer: %w", err)
	}

	if err = s.Redis.Set(ctx, key, payload, s.TTL).Err(); err != nil {
		err = fmt.Errorf("%w: could not set %s: %w", ErrStoreUnavailable, key, err)
		return err
	}

	return nil
}

func (s *RedisDelayStore) Delete(ctx context.Context, targetID string) (err error) {
	ctx, span := s.Tracer.Start(ctx, "redis.delaytimer.delete")
	defer span.End()

	key := delayTimerKey(targetID)
	span.SetAttributes(attribute.String("key", key))

	if err = s.Redis.Del(ctx, key).Err(); err != nil {
		err = fmt.Errorf("%w: could not delete %s: %w", ErrStoreUnavailable, key, err)
		return err
	}

	return nil
}

// Close releases the connection pool, if the store owns one.
func (s *RedisDelayStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
