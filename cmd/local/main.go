package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	cmdinternal "github.com/spacelift-io/queuescalr/cmd/internal"
	"github.com/spacelift-io/queuescalr/internal"
	"github.com/spacelift-io/queuescalr/internal/tracing"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	platform    string
	dryRun      bool
	traceStdout bool
	verbose     bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "queuescalr",
		Short:         "Run a single queue-driven scaling cycle",
		Long:          "Reads the queue depth, decides on the worker count and applies it, using the same environment variables as the deployed functions.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.platform, "platform", "", "fleet platform (ecs, asg, azure, gcp), overrides FLEET_PLATFORM")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "decide without changing the fleet, overrides DRY_RUN")
	cmd.Flags().BoolVar(&opts.traceStdout, "trace-stdout", false, "print spans to stderr instead of sending them to X-Ray")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log decision comments")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg internal.RuntimeConfig
	if err := cfg.Parse(internal.Platform(opts.platform)); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		return err
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}

	var tp *sdktrace.TracerProvider
	if opts.traceStdout {
		var err error
		if tp, err = tracing.InitStdoutTracer(os.Stderr); err != nil {
			logger.Error("failed to initialize tracing", "error", err)
			return err
		}
	} else {
		tp = tracing.InitOtelXrayTracer(ctx, logger, false)
	}

	defer func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}(context.WithoutCancel(ctx))

	ctx, span := otel.Tracer("local").Start(ctx, "autoscaling")
	defer span.End()

	result, err := cmdinternal.Handle(ctx, logger, &cfg)
	if err != nil {
		logger.With("msg", err.Error()).Error("could not handle request")
		span.RecordError(err)
		span.SetStatus(codes.Error, "")
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
