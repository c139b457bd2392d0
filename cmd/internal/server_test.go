package internal_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	cmdinternal "github.com/spacelift-io/queuescalr/cmd/internal"
	"github.com/spacelift-io/queuescalr/internal"
)

func TestScaleHandler_RejectsNonPost(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := cmdinternal.ScaleHandler(logger, &internal.RuntimeConfig{}, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/scale", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestScaleHandler_InvalidConfiguration(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	// Zero bounds fail validation before any collaborator is built.
	cfg := &internal.RuntimeConfig{
		Platform:       internal.PlatformECS,
		QueueSource:    internal.QueueSourceRabbitMQ,
		DelayStore:     internal.DelayStoreRedis,
		ECSClusterName: "workers",
		ECSServiceName: "celery-worker",
	}

	var seen []string
	handler := cmdinternal.ScaleHandler(logger, cfg, func(logger *slog.Logger, r *http.Request) *slog.Logger {
		seen = append(seen, r.URL.Path)
		return logger
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/scale", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"/scale"}, seen)

	var body cmdinternal.ScaleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "error", body.Status)
	require.Nil(t, body.Result)
	require.Contains(t, body.Error, internal.ErrConfigurationInvalid.Error())
}

func TestErrorStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, cmdinternal.ErrorStatus(internal.ErrConfigurationInvalid))
	require.Equal(t, http.StatusInternalServerError, cmdinternal.ErrorStatus(internal.ErrFleetUnavailable))
}
