package tracing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	lambdadetector "go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// InitOtelXrayTracer sends spans to the local X-Ray daemon over UDP. On Lambda
// the function resource attributes are detected and attached.
func InitOtelXrayTracer(ctx context.Context, logger *slog.Logger, isLambda bool) *trace.TracerProvider {
	opts := []trace.TracerProviderOption{}

	if isLambda {
		detector := lambdadetector.NewResourceDetector()
		lambdaResource, err := detector.Detect(ctx)
		if err != nil {
			logger.Error("failed to detect lambda resource attributes", "error", err)
			os.Exit(1)
		}
		opts = append(opts, trace.WithResource(lambdaResource))
	}

	udpExporter, err := xrayudp.NewSpanExporter(ctx)
	if err != nil {
		logger.Error("failed to initialize xray exporter", "error", err)
		os.Exit(1)
	}

	opts = append(opts, trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(udpExporter)))
	opts = append(opts, trace.WithIDGenerator(xray.NewIDGenerator()))
	tp := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return tp
}

// InitStdoutTracer pretty-prints spans to w, for running locally without an
// X-Ray daemon.
func InitStdoutTracer(w io.Writer) (*trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("could not create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithIDGenerator(xray.NewIDGenerator()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return tp, nil
}
