package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	cmdinternal "github.com/spacelift-io/queuescalr/cmd/internal"
	"github.com/spacelift-io/queuescalr/internal"
)

// Google Cloud Run entry point. Cloud Scheduler POSTs to /scale on every tick;
// Cloud Run provides the port in PORT.

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Parse config at startup - fail fast on misconfiguration
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(internal.PlatformGCP); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()

	mux.Handle("/scale", cmdinternal.ScaleHandler(logger, &cfg, withCloudTrace))

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		cmdinternal.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		cmdinternal.WriteJSON(w, logger, http.StatusOK, map[string]string{"service": "queuescalr Cloud Run"})
	})

	if err := cmdinternal.Serve(ctx, logger, ":"+port, mux); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func withCloudTrace(logger *slog.Logger, r *http.Request) *slog.Logger {
	if traceID := r.Header.Get("X-Cloud-Trace-Context"); traceID != "" {
		return logger.With("trace_id", traceID)
	}
	return logger
}
