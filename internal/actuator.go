package internal

import (
	"context"
	"errors"
	"log/slog"
)

// Outcome describes what the Actuator did with a Decision.
type Outcome struct {
	Applied         bool             `json:"applied"`
	DryRun          bool             `json:"dry_run"`
	Acknowledgement *Acknowledgement `json:"acknowledgement,omitempty"`
}

// Actuator applies decisions to the fleet. Writes are idempotent on the
// orchestrator side, so there is no deduplication here.
type Actuator struct {
	fleet  FleetController
	dryRun bool
	logger *slog.Logger
}

func NewActuator(fleet FleetController, dryRun bool, logger *slog.Logger) *Actuator {
	return &Actuator{fleet: fleet, dryRun: dryRun, logger: logger}
}

func (a *Actuator) Apply(ctx context.Context, target Target, decision Decision) (Outcome, error) {
	if !decision.RequiresWrite() {
		return Outcome{DryRun: a.dryRun}, nil
	}

	logger := a.logger.With(
		"action", decision.Action,
		"from", decision.From,
		"to", decision.To,
	)

	if a.dryRun {
		logger.Info("dry run, not setting desired count")
		return Outcome{DryRun: true}, nil
	}

	ack, err := a.fleet.SetDesiredCount(ctx, target, decision.To)
	if err != nil {
		if !errors.Is(err, ErrFleetUnavailable) {
			err = classify(ErrActuationFailed, err)
		}
		return Outcome{}, err
	}

	logger.With("acknowledged_count", ack.DesiredCount).Info("desired count set")

	return Outcome{Applied: true, Acknowledgement: &ack}, nil
}
