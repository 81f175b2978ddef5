package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-pool/external/webhook"
	"github.com/riskibarqy/prediction-pool/internal/config"
	"github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/riskibarqy/prediction-pool/internal/platform/resilience"
	"github.com/riskibarqy/prediction-pool/internal/usecase"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:          ":0",
		StorageDriver:     config.StorageMemory,
		SeedDemoData:      true,
		CacheEnabled:      true,
		CacheTTL:          time.Minute,
		EvaluationWorkers: 2,
		InternalJobToken:  "token",
		MetricsEnabled:    true,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	server, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cleanup()) })

	for _, path := range []string{
		"/healthz",
		"/metrics",
		"/v1/leagues/" + memory.LeagueIDOffice + "/leaderboard",
		"/v1/leagues/" + memory.LeagueIDFriends + "/settings",
	} {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, "%s: %s", path, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.LeagueIDOffice+"/evaluators", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "closest-value")
}

func TestNewHTTPServer_WithoutMetrics(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	cfg.SeedDemoData = false

	server, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.LeagueIDOffice+"/leaderboard", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, _, err := NewHTTPServer(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestNewScoreNotifier(t *testing.T) {
	cfg := memoryConfig()

	notifier, err := newScoreNotifier(cfg, logging.NewNop())
	require.NoError(t, err)
	require.IsType(t, &usecase.LoggingNotifier{}, notifier)

	cfg.NotifyWebhookURL = "https://hooks.example.com/scored"
	cfg.NotifyCircuit = resilience.DefaultCircuitBreakerConfig()
	notifier, err = newScoreNotifier(cfg, logging.NewNop())
	require.NoError(t, err)
	require.IsType(t, &webhook.Notifier{}, notifier)

	cfg.NotifyWebhookURL = "ftp://hooks.example.com"
	_, err = newScoreNotifier(cfg, logging.NewNop())
	require.Error(t, err)
}
