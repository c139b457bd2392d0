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

// Azure Functions custom handler. The Functions host forwards each timer
// trigger as a POST to /{functionName} on FUNCTIONS_CUSTOMHANDLER_PORT.

const functionName = "AutoscalerTimer"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Parse config at startup - fail fast on misconfiguration
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(internal.PlatformAzure); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()

	mux.Handle("/"+functionName, cmdinternal.ScaleHandler(logger, &cfg, withInvocationID))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("queuescalr Azure Function"))
	})

	if err := cmdinternal.Serve(ctx, logger, ":"+port, mux); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func withInvocationID(logger *slog.Logger, r *http.Request) *slog.Logger {
	if invocationID := r.Header.Get("x-azure-functions-invocationid"); invocationID != "" {
		return logger.With("invocation_id", invocationID)
	}
	return logger
}
