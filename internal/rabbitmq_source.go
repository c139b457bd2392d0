package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RabbitMQSource reads queue depth from the RabbitMQ management API.
type RabbitMQSource struct {
	// Clients.
	HTTP *http.Client

	// Configuration.
	BaseURL  string
	User     string
	Password string
}

type rabbitMQQueue struct {
	MessagesReady *int `json:"messages_ready"`
}

// NewRabbitMQSource creates a source for the management API on the configured
// host and port. A host that already carries a scheme is used as is.
func NewRabbitMQSource(cfg *RuntimeConfig) *RabbitMQSource {
	baseURL := cfg.RabbitMQHost
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + net.JoinHostPort(cfg.RabbitMQHost, strconv.Itoa(cfg.RabbitMQManagementPort))
	}

	return &RabbitMQSource{
		HTTP: &http.Client{
			Transport: otelhttp.NewTransport(
				http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
					return "rabbitmq.queue.get"
				}),
			),
		},
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		User:     cfg.RabbitMQUser,
		Password: cfg.RabbitMQPassword,
	}
}

// GetReadyCount returns messages_ready for the queue. The vhost may be given
// raw ("/") or already encoded ("%2F"). Only a vhost containing an encoded
// slash is unescaped, so other literal "%xx" sequences reach the broker as-is.
func (s *RabbitMQSource) GetReadyCount(ctx context.Context, queueName, vhost string) (int, error) {
	if strings.Contains(strings.ToLower(vhost), "%2f") {
		if unescaped, err := url.PathUnescape(vhost); err == nil {
			vhost = unescaped
		}
	}

	endpoint := fmt.Sprintf("%s/api/queues/%s/%s", s.BaseURL, url.PathEscape(vhost), url.PathEscape(queueName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: could not build RabbitMQ request: %w", ErrSourceUnavailable, err)
	}

	req.SetBasicAuth(s.User, s.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: could not query RabbitMQ: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: RabbitMQ returned %s: %s", ErrSourceUnavailable, resp.Status, strings.TrimSpace(string(body)))
	}

	var queue rabbitMQQueue

	if err := json.NewDecoder(resp.Body).Decode(&queue); err != nil {
		return 0, fmt.Errorf("%w: could not decode RabbitMQ queue: %w", ErrSourceUnavailable, err)
	}

	// A queue with no statistics yet reports no messages_ready field.
	if queue.MessagesReady == nil {
		return 0, nil
	}

	if *queue.MessagesReady < 0 {
		return 0, fmt.Errorf("%w: RabbitMQ reported %d ready messages", ErrSourceUnavailable, *queue.MessagesReady)
	}

	return *queue.MessagesReady, nil
}
