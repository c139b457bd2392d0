package internal_test

import (
	"context"
	"fmt"

	"github.com/spacelift-io/queuescalr/internal"
)

// memoryStore is a DelayStore that keeps timers in a map and can be told to
// fail or to hold a corrupt timer.
type memoryStore struct {
	timers  map[string]internal.DelayTimer
	corrupt map[string]bool

	getErr, setErr, deleteErr error

	sets, deletes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		timers:  make(map[string]internal.DelayTimer),
		corrupt: make(map[string]bool),
	}
}

func (s *memoryStore) Get(_ context.Context, targetID string) (internal.DelayTimer, bool, error) {
	if s.getErr != nil {
		return internal.DelayTimer{}, false, s.getErr
	}

	if s.corrupt[targetID] {
		return internal.DelayTimer{}, false, fmt.Errorf("%w: bad payload", internal.ErrDelayTimerCorrupt)
	}

	timer, ok := s.timers[targetID]
	return timer, ok, nil
}

func (s *memoryStore) Set(_ context.Context, targetID string, timer internal.DelayTimer) error {
	if s.setErr != nil {
		return s.setErr
	}

	s.sets++
	delete(s.corrupt, targetID)
	s.timers[targetID] = timer
	return nil
}

func (s *memoryStore) Delete(_ context.Context, targetID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}

	s.deletes++
	delete(s.corrupt, targetID)
	delete(s.timers, targetID)
	return nil
}

var errStoreDown = fmt.Errorf("%w: connection refused", internal.ErrStoreUnavailable)
