package internal_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/queuescalr/internal"
)

var actuatorTarget = internal.Target{Cluster: "workers", Service: "celery"}

func TestActuator_NoWriteDecisions(t *testing.T) {
	for _, decision := range []internal.Decision{
		internal.NoChange(2),
		internal.ScaleDownDelayed(2, 1, 900*time.Second),
		internal.ScaleDownWaiting(2, 1, 500*time.Second, 400*time.Second),
	} {
		t.Run(string(decision.Action), func(t *testing.T) {
			fleet := NewMockFleetController(t)

			outcome, err := internal.NewActuator(fleet, false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
				Apply(t.Context(), actuatorTarget, decision)

			require.NoError(t, err)
			require.False(t, outcome.Applied)
			require.Nil(t, outcome.Acknowledgement)
			fleet.AssertNotCalled(t, "SetDesiredCount", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestActuator_AppliesScaling(t *testing.T) {
	for _, decision := range []internal.Decision{
		internal.ScaleUp(1, 4),
		internal.ScaleDown(4, 1),
	} {
		t.Run(string(decision.Action), func(t *testing.T) {
			fleet := NewMockFleetController(t)
			fleet.On("SetDesiredCount", mock.Anything, actuatorTarget, decision.To).
				Return(internal.Acknowledgement{DesiredCount: decision.To, Reference: "arn"}, nil).Once()

			outcome, err := internal.NewActuator(fleet, false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
				Apply(t.Context(), actuatorTarget, decision)

			require.NoError(t, err)
			require.True(t, outcome.Applied)
			require.Equal(t, &internal.Acknowledgement{DesiredCount: decision.To, Reference: "arn"}, outcome.Acknowledgement)
		})
	}
}

func TestActuator_DryRunNeverWrites(t *testing.T) {
	for _, decision := range []internal.Decision{
		internal.NoChange(2),
		internal.ScaleUp(1, 4),
		internal.ScaleDown(4, 1),
		internal.ScaleDownDelayed(2, 1, time.Minute),
		internal.ScaleDownWaiting(2, 1, time.Second, time.Minute),
	} {
		t.Run(string(decision.Action), func(t *testing.T) {
			var buf bytes.Buffer
			fleet := NewMockFleetController(t)

			outcome, err := internal.NewActuator(fleet, true, slog.New(slog.NewTextHandler(&buf, nil))).
				Apply(t.Context(), actuatorTarget, decision)

			require.NoError(t, err)
			require.True(t, outcome.DryRun)
			require.False(t, outcome.Applied)
			fleet.AssertNotCalled(t, "SetDesiredCount", mock.Anything, mock.Anything, mock.Anything)

			if decision.RequiresWrite() {
				require.Contains(t, buf.String(), "dry run, not setting desired count")
			}
		})
	}
}

func TestActuator_WriteFailure(t *testing.T) {
	t.Run("rejected write", func(t *testing.T) {
		fleet := NewMockFleetController(t)
		fleet.On("SetDesiredCount", mock.Anything, actuatorTarget, 4).
			Return(internal.Acknowledgement{}, errors.New("throttled")).Once()

		_, err := internal.NewActuator(fleet, false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
			Apply(t.Context(), actuatorTarget, internal.ScaleUp(1, 4))

		require.ErrorIs(t, err, internal.ErrActuationFailed)
	})

	t.Run("unreachable fleet", func(t *testing.T) {
		fleet := NewMockFleetController(t)
		fleet.On("SetDesiredCount", mock.Anything, actuatorTarget, 4).
			Return(internal.Acknowledgement{}, internal.ErrFleetUnavailable).Once()

		_, err := internal.NewActuator(fleet, false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
			Apply(t.Context(), actuatorTarget, internal.ScaleUp(1, 4))

		require.ErrorIs(t, err, internal.ErrFleetUnavailable)
		require.NotErrorIs(t, err, internal.ErrActuationFailed)
	})
}
