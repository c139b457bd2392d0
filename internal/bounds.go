package internal

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// busyQueueThreshold is the queue size from which a fleet always gets at
// least busyQueueMinWorkers workers, regardless of tasks per worker.
const (
	busyQueueThreshold  = 100
	busyQueueMinWorkers = 2
)

// ScalingBounds holds the limits a single invocation works within.
type ScalingBounds struct {
	MinWorkers     int           `json:"min_workers"`
	MaxWorkers     int           `json:"max_workers"`
	TasksPerWorker int           `json:"tasks_per_worker"`
	ScaleDownDelay time.Duration `json:"scale_down_delay"`
}

// Validate reports every problem with the bounds at once.
func (b ScalingBounds) Validate() error {
	var errs []error

	if b.MinWorkers < 1 {
		errs = append(errs, fmt.Errorf("minimum workers must be positive, got %d", b.MinWorkers))
	}

	if b.MaxWorkers < b.MinWorkers {
		errs = append(errs, fmt.Errorf("maximum workers (%d) must not be lower than minimum workers (%d)", b.MaxWorkers, b.MinWorkers))
	}

	// Orchestrators take the desired count as a 32-bit integer.
	if b.MaxWorkers > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("maximum workers must not exceed %d, got %d", math.MaxInt32, b.MaxWorkers))
	}

	if b.TasksPerWorker < 1 {
		errs = append(errs, fmt.Errorf("tasks per worker must be positive, got %d", b.TasksPerWorker))
	}

	if b.ScaleDownDelay < 0 {
		errs = append(errs, fmt.Errorf("scale down delay must not be negative, got %s", b.ScaleDownDelay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfigurationInvalid, errors.Join(errs...))
	}

	return nil
}

// CalculateReplicas maps a queue size to the number of workers the fleet
// should run. The bounds are expected to be valid.
func CalculateReplicas(queueSize int, bounds ScalingBounds) int {
	if queueSize < 0 {
		queueSize = 0
	}

	raw := queueSize / bounds.TasksPerWorker
	if queueSize%bounds.TasksPerWorker != 0 {
		raw++
	}

	if queueSize >= busyQueueThreshold {
		raw = max(raw, busyQueueMinWorkers)
	}

	return min(max(raw, bounds.MinWorkers), bounds.MaxWorkers)
}
