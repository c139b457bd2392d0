package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spacelift-io/queuescalr/internal"
)

// Handle runs a single scaling cycle with collaborators built from cfg. It
// resolves secrets on a copy, so cfg can be shared between invocations.
func Handle(ctx context.Context, logger *slog.Logger, cfg *internal.RuntimeConfig) (result internal.Result, err error) {
	runtime := *cfg

	var closers []io.Closer
	defer func() {
		for _, closer := range closers {
			err = errors.Join(err, closer.Close())
		}
	}()

	track := func(v any) {
		if closer, ok := v.(io.Closer); ok {
			closers = append(closers, closer)
		}
	}

	scalingConfig, err := runtime.ScalingConfig()
	if err != nil {
		return result, err
	}

	if runtime.NeedsSecrets() {
		reader, err := internal.NewSecretReader(ctx, &runtime)
		if err != nil {
			return result, fmt.Errorf("could not create secret reader: %w", err)
		}
		track(reader)

		if err := runtime.ResolveSecrets(ctx, reader); err != nil {
			return result, err
		}
	}

	source, err := internal.NewQueueDepthSource(ctx, &runtime)
	if err != nil {
		return result, fmt.Errorf("could not create queue depth source: %w", err)
	}

	store, err := internal.NewDelayStore(ctx, &runtime)
	if err != nil {
		return result, fmt.Errorf("could not create delay store: %w", err)
	}
	track(store)

	fleet, err := internal.NewFleetController(ctx, &runtime)
	if err != nil {
		return result, fmt.Errorf("could not create fleet controller: %w", err)
	}
	track(fleet)

	groupKey, groupID := runtime.GroupKeyAndID()
	logger = logger.With(
		"platform", runtime.Platform,
		"queue_source", runtime.QueueSource,
		"delay_store", runtime.DelayStore,
		groupKey, groupID,
	)

	return internal.NewAutoScaler(source, store, fleet, logger).Scale(ctx, scalingConfig)
}
