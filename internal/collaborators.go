package internal

import (
	"context"
	"time"
)

// QueueSnapshot is the queue depth observed during a single invocation.
type QueueSnapshot struct {
	QueueSize int       `json:"queue_size"`
	SampledAt time.Time `json:"sampled_at"`
}

// QueueDepthSource supplies the number of messages ready for consumption.
//
//go:generate mockery --output ./ --name QueueDepthSource --filename mock_queue_depth_source_test.go --outpkg internal_test
type QueueDepthSource interface {
	GetReadyCount(ctx context.Context, queueName, vhost string) (int, error)
}

// DelayTimer records that the fleet was first seen as oversized, and which
// size it should shrink to.
type DelayTimer struct {
	TargetID         string    `json:"target_id"`
	FirstSeenAt      time.Time `json:"first_seen_at"`
	CandidateWorkers int       `json:"candidate_workers"`
}

// DelayStore persists delay timers between invocations. The presence of a
// timer for a target means a scale-down is pending.
//
//go:generate mockery --output ./ --name DelayStore --filename mock_delay_store_test.go --outpkg internal_test
type DelayStore interface {
	Get(ctx context.Context, targetID string) (timer DelayTimer, found bool, err error)
	Set(ctx context.Context, targetID string, timer DelayTimer) error
	Delete(ctx context.Context, targetID string) error
}

// Acknowledgement is what the orchestrator returned for a desired count write.
type Acknowledgement struct {
	DesiredCount int    `json:"desired_count"`
	Reference    string `json:"reference,omitempty"`
}

// FleetController reads and writes the desired replica count of a fleet.
//
//go:generate mockery --output ./ --name FleetController --filename mock_fleet_controller_test.go --outpkg internal_test
type FleetController interface {
	GetDesiredCount(ctx context.Context, target Target) (int, error)
	SetDesiredCount(ctx context.Context, target Target, count int) (Acknowledgement, error)
}

// SecretReader resolves a secret value by name from the platform's secret store.
type SecretReader interface {
	ReadSecret(ctx context.Context, name string) (string, error)
}
