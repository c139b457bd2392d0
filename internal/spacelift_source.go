package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/graphql"
	spacelift "github.com/spacelift-io/spacectl/client"
	"github.com/spacelift-io/spacectl/client/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// WorkerPoolDetails is the GraphQL query for the queue of a Spacelift worker
// pool. The queue name given to the source is the worker pool ID.
type WorkerPoolDetails struct {
	Pool *struct {
		PendingRuns int32 `graphql:"pendingRuns" json:"pendingRuns"`
	} `graphql:"workerPool(id: $workerPool)"`
}

// SpaceliftSource treats the runs waiting for a private worker pool as its
// queue.
type SpaceliftSource struct {
	// Clients.
	Spacelift ifaces.Spacelift

	// Telemetry.
	Tracer trace.Tracer
}

func newSpaceliftClient(ctx context.Context, endpoint, keyID, keySecret string) (ifaces.Spacelift, error) {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Host
			}),
		),
	}

	slSession, err := session.FromAPIKey(ctx, httpClient)(endpoint, keyID, keySecret)

	if err != nil {
		return nil, fmt.Errorf("could not create Spacelift session: %w", err)
	}

	return spacelift.New(httpClient, slSession), nil
}

// NewSpaceliftSource creates a new Spacelift queue depth source. The API key
// secret must already be resolved.
func NewSpaceliftSource(ctx context.Context, cfg *RuntimeConfig) (*SpaceliftSource, error) {
	if cfg.SpaceliftAPIKeySecret == "" {
		return nil, fmt.Errorf("%w: Spacelift API key secret was not resolved", ErrConfigurationInvalid)
	}

	client, err := newSpaceliftClient(ctx, cfg.SpaceliftAPIEndpoint, cfg.SpaceliftAPIKeyID, cfg.SpaceliftAPIKeySecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return &SpaceliftSource{
		Spacelift: client,
		Tracer:    otel.Tracer(tracerName),
	}, nil
}

func (s *SpaceliftSource) GetReadyCount(ctx context.Context, workerPoolID, _ string) (count int, err error) {
	ctx, span := s.Tracer.Start(ctx, "spacelift.workerpool.get")
	defer span.End()

	span.SetAttributes(attribute.String("worker_pool_id", workerPoolID))

	var wpDetails WorkerPoolDetails

	if err = s.Spacelift.Query(ctx, &wpDetails, map[string]any{"workerPool": graphql.ID(workerPoolID)}); err != nil {
		err = fmt.Errorf("%w: could not get Spacelift worker pool details: %w", ErrSourceUnavailable, err)
		return 0, err
	}

	if wpDetails.Pool == nil {
		err = fmt.Errorf("%w: worker pool not found or not accessible", ErrSourceUnavailable)
		return 0, err
	}

	count = int(wpDetails.Pool.PendingRuns)

	span.SetAttributes(attribute.Int("pending_runs", count))

	return count, nil
}
