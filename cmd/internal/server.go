package internal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spacelift-io/queuescalr/internal"
)

const shutdownTimeout = 15 * time.Second

// Serve runs an HTTP server on addr until ctx is cancelled, then shuts it down
// gracefully. Request contexts derive from ctx.
func Serve(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received, starting graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

// ScaleResponse is the body returned by the HTTP entry points.
type ScaleResponse struct {
	Status   string           `json:"status"`
	Duration string           `json:"duration"`
	Result   *internal.Result `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// ScaleHandler runs one scaling cycle per POST request. requestLogger adds
// platform specific request identifiers to the logger.
func ScaleHandler(logger *slog.Logger, cfg *internal.RuntimeConfig, requestLogger func(*slog.Logger, *http.Request) *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			WriteJSON(w, logger, http.StatusMethodNotAllowed, ScaleResponse{
				Status: "error",
				Error:  "only POST requests are accepted",
			})
			return
		}

		startTime := time.Now()

		logger := logger
		if requestLogger != nil {
			logger = requestLogger(logger, r)
		}

		logger.Info("autoscaler invoked")

		result, err := Handle(r.Context(), logger, cfg)
		if err != nil {
			logger.Error("autoscaling failed", "error", err, "duration", time.Since(startTime))

			WriteJSON(w, logger, ErrorStatus(err), ScaleResponse{
				Status:   "error",
				Duration: time.Since(startTime).String(),
				Error:    err.Error(),
			})
			return
		}

		logger.Info("autoscaler completed successfully", "duration", time.Since(startTime))

		WriteJSON(w, logger, http.StatusOK, ScaleResponse{
			Status:   "success",
			Duration: time.Since(startTime).String(),
			Result:   &result,
		})
	}
}

// ErrorStatus maps configuration problems to 400 so that the scheduler does
// not keep retrying an invocation that cannot succeed.
func ErrorStatus(err error) int {
	if errors.Is(err, internal.ErrConfigurationInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
