package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"

	cmdinternal "github.com/spacelift-io/queuescalr/cmd/internal"
	"github.com/spacelift-io/queuescalr/internal"
	"github.com/spacelift-io/queuescalr/internal/tracing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	// Parse config at startup - fail fast on misconfiguration
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(""); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	tp := tracing.InitOtelXrayTracer(ctx, logger, true)
	defer func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}(ctx)

	handler := func(ctx context.Context) (internal.Result, error) {
		logger := logger
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			logger = logger.With("aws_request_id", lc.AwsRequestID)
		}

		result, err := cmdinternal.Handle(ctx, logger, &cfg)
		if err != nil {
			logger.Error("autoscaling failed", "error", err)
		}

		return result, err
	}

	lambda.Start(otellambda.InstrumentHandler(handler,
		otellambda.WithTracerProvider(tp),
		otellambda.WithFlusher(tp),
	))
}
