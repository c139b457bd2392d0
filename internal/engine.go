package internal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EngineInput is everything the DecisionEngine needs to evaluate one target.
type EngineInput struct {
	TargetID       string
	Current        int
	Desired        int
	ScaleDownDelay time.Duration
	Now            time.Time
}

// DecisionEngine turns the calculated worker count into a Decision, applying
// an asymmetric hysteresis: scaling up happens immediately while scaling down
// only happens once the same shrink target has been observed for the whole
// scale down delay.
//
// The engine holds no state of its own. Whether a scale-down is pending for a
// target is inferred from the presence of its DelayTimer in the store.
type DecisionEngine struct {
	store DelayStore
}

func NewDecisionEngine(store DelayStore) *DecisionEngine {
	return &DecisionEngine{store: store}
}

type timerWrite int

const (
	timerUntouched timerWrite = iota
	timerSet
	timerDelete
)

// Decide evaluates the state machine for a single target. The timer is only
// written after the decision is fully determined; if that write fails, no
// decision is returned.
func (e *DecisionEngine) Decide(ctx context.Context, in EngineInput) (Decision, error) {
	timer, found, err := e.store.Get(ctx, in.TargetID)

	corrupt := errors.Is(err, ErrDelayTimerCorrupt)
	if corrupt {
		found, err = false, nil
	}

	if err != nil {
		return Decision{}, stateUnavailable("read", err)
	}

	decision, write := e.evaluate(in, timer, found, corrupt)

	switch write {
	case timerSet:
		err = e.store.Set(ctx, in.TargetID, DelayTimer{
			TargetID:         in.TargetID,
			FirstSeenAt:      in.Now,
			CandidateWorkers: in.Desired,
		})
		if err != nil {
			return Decision{}, stateUnavailable("write", err)
		}
	case timerDelete:
		if err = e.store.Delete(ctx, in.TargetID); err != nil {
			return Decision{}, stateUnavailable("delete", err)
		}
	}

	return decision, nil
}

func (e *DecisionEngine) evaluate(in EngineInput, timer DelayTimer, found, corrupt bool) (Decision, timerWrite) {
	pending := found || corrupt

	switch {
	case in.Desired > in.Current:
		decision := ScaleUp(in.Current, in.Desired)
		if !pending {
			return decision, timerUntouched
		}
		return decision.withComment("scale up cancelled the pending scale down"), timerDelete

	case in.Desired == in.Current:
		decision := NoChange(in.Current)
		if !pending {
			return decision, timerUntouched
		}
		return decision.withComment("scale down condition resolved"), timerDelete
	}

	// From here on, the fleet is larger than it needs to be.
	if !found {
		decision := ScaleDownDelayed(in.Current, in.Desired, in.ScaleDownDelay)
		if corrupt {
			decision = decision.withComment("unreadable delay timer was reset")
		}
		return decision.withComment("scale down delay started"), timerSet
	}

	if timer.CandidateWorkers != in.Desired {
		return ScaleDownDelayed(in.Current, in.Desired, in.ScaleDownDelay).
			withComment("scale down target changed from %d to %d, delay restarted", timer.CandidateWorkers, in.Desired), timerSet
	}

	// A timer from the future (clock skew between invokers) counts as fresh.
	elapsed := max(in.Now.Sub(timer.FirstSeenAt), 0)

	if elapsed >= in.ScaleDownDelay {
		return ScaleDown(in.Current, timer.CandidateWorkers).
			withComment("scale down delay of %s elapsed", in.ScaleDownDelay), timerDelete
	}

	return ScaleDownWaiting(in.Current, timer.CandidateWorkers, elapsed, in.ScaleDownDelay-elapsed), timerUntouched
}

func stateUnavailable(op string, err error) error {
	return fmt.Errorf("%w: could not %s delay timer: %w", ErrStateUnavailable, op, err)
}
