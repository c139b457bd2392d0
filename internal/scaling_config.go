package internal

import (
	"errors"
	"fmt"
	"time"
)

// ScalingConfig is the typed, explicit configuration of a single invocation.
type ScalingConfig struct {
	Target      Target
	QueueName   string
	VHost       string
	Bounds      ScalingBounds
	DryRun      bool
	CallTimeout time.Duration
}

// Validate is checked before any external call is made.
func (c ScalingConfig) Validate() error {
	var errs []error

	if err := c.Bounds.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Target.Cluster == "" || c.Target.Service == "" {
		errs = append(errs, fmt.Errorf("%w: target cluster and service must both be set", ErrConfigurationInvalid))
	}

	if c.QueueName == "" {
		errs = append(errs, fmt.Errorf("%w: queue name must be set", ErrConfigurationInvalid))
	}

	if c.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: call timeout must not be negative", ErrConfigurationInvalid))
	}

	return errors.Join(errs...)
}
