package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/spacelift-io/queuescalr/internal"

// Result is returned to the caller of a successful invocation.
type Result struct {
	Target   Target        `json:"target"`
	Snapshot QueueSnapshot `json:"snapshot"`
	Current  int           `json:"current_workers"`
	Desired  int           `json:"desired_workers"`
	Decision Decision      `json:"decision"`
	Outcome  Outcome       `json:"outcome"`
}

// AutoScaler runs one full decision cycle per call to Scale. It keeps nothing
// between calls, so it can be embedded in any periodic trigger.
type AutoScaler struct {
	source QueueDepthSource
	store  DelayStore
	fleet  FleetController
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewAutoScaler(source QueueDepthSource, store DelayStore, fleet FleetController, logger *slog.Logger) *AutoScaler {
	return &AutoScaler{
		source: source,
		store:  store,
		fleet:  fleet,
		logger: logger,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// WithClock replaces the time source, mostly for tests.
func (s *AutoScaler) WithClock(now func() time.Time) *AutoScaler {
	s.now = now
	return s
}

// Scale reads the queue depth and the fleet's desired count, decides, and
// applies the decision. Reads always happen before the decision, and the
// fleet write only after the delay timer has been updated.
func (s *AutoScaler) Scale(ctx context.Context, cfg ScalingConfig) (result Result, err error) {
	if err = cfg.Validate(); err != nil {
		return result, err
	}

	ctx, span := s.tracer.Start(ctx, "autoscaler.scale")
	defer span.End()

	span.SetAttributes(
		attribute.String("target_id", cfg.Target.ID()),
		attribute.Bool("dry_run", cfg.DryRun),
	)

	logger := s.logger.With(
		"target_id", cfg.Target.ID(),
		"queue_name", cfg.QueueName,
	)

	result.Target = cfg.Target

	queueSize, err := withTimeout(ctx, cfg.CallTimeout, func(ctx context.Context) (int, error) {
		return s.source.GetReadyCount(ctx, cfg.QueueName, cfg.VHost)
	})
	if err != nil {
		return result, fmt.Errorf("could not get queue depth: %w", classify(ErrSourceUnavailable, err))
	}

	result.Snapshot = QueueSnapshot{QueueSize: queueSize, SampledAt: s.now()}

	current, err := withTimeout(ctx, cfg.CallTimeout, func(ctx context.Context) (int, error) {
		return s.fleet.GetDesiredCount(ctx, cfg.Target)
	})
	if err != nil {
		return result, fmt.Errorf("could not get current desired count: %w", classify(ErrFleetUnavailable, err))
	}

	result.Current = current
	result.Desired = CalculateReplicas(queueSize, cfg.Bounds)

	logger = logger.With(
		"queue_size", queueSize,
		"current_workers", result.Current,
		"desired_workers", result.Desired,
		"min_workers", cfg.Bounds.MinWorkers,
		"max_workers", cfg.Bounds.MaxWorkers,
	)

	span.SetAttributes(
		attribute.Int("queue_size", queueSize),
		attribute.Int("current_workers", result.Current),
		attribute.Int("desired_workers", result.Desired),
	)

	result.Decision, err = withTimeout(ctx, cfg.CallTimeout, func(ctx context.Context) (Decision, error) {
		return NewDecisionEngine(s.store).Decide(ctx, EngineInput{
			TargetID:       cfg.Target.ID(),
			Current:        result.Current,
			Desired:        result.Desired,
			ScaleDownDelay: cfg.Bounds.ScaleDownDelay,
			Now:            result.Snapshot.SampledAt,
		})
	})
	if err != nil {
		return result, fmt.Errorf("could not decide: %w", err)
	}

	span.SetAttributes(attribute.String("action", string(result.Decision.Action)))

	logger = logger.With("action", result.Decision.Action)
	for _, comment := range result.Decision.Comments {
		logger.Debug(comment)
	}
	logger.Info(result.Decision.String())

	result.Outcome, err = withTimeout(ctx, cfg.CallTimeout, func(ctx context.Context) (Outcome, error) {
		return NewActuator(s.fleet, cfg.DryRun, logger).Apply(ctx, cfg.Target, result.Decision)
	})
	if err != nil {
		return result, fmt.Errorf("could not apply decision: %w", err)
	}

	return result, nil
}

// withTimeout bounds a single external call. A zero timeout leaves the
// caller's context untouched.
func withTimeout[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return call(ctx)
}
