package internal

import (
	"errors"
	"fmt"
)

// Error categories surfaced to the caller of a scaling invocation. None of
// them is retried internally: the external scheduler simply tries again on
// its next tick.
var (
	ErrSourceUnavailable    = errors.New("queue depth source unavailable")
	ErrStoreUnavailable     = errors.New("delay store unavailable")
	ErrStateUnavailable     = errors.New("scaling state unavailable")
	ErrFleetUnavailable     = errors.New("fleet controller unavailable")
	ErrConfigurationInvalid = errors.New("invalid configuration")
	ErrActuationFailed      = errors.New("actuation failed")

	// ErrDelayTimerCorrupt is returned by a DelayStore when a timer exists but
	// cannot be decoded. The store itself is reachable.
	ErrDelayTimerCorrupt = errors.New("delay timer is corrupt")
)

// classify makes sure err carries the given category, wrapping it if needed.
func classify(category, err error) error {
	if err == nil || errors.Is(err, category) {
		return err
	}

	return fmt.Errorf("%w: %w", category, err)
}
