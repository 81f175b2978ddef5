package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/prediction-pool/internal/config"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestStart_AllDisabled(t *testing.T) {
	shutdown, err := Start(config.Config{
		ServiceName:    "prediction-pool-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNStaysDisabled(t *testing.T) {
	shutdown, err := Start(config.Config{UptraceEnabled: true}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestStartPprofServer(t *testing.T) {
	stop, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, stop(ctx))
}

func TestPprofMux(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/pprof/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPyroscopeConfig(t *testing.T) {
	got := pyroscopeConfig(config.Config{
		AppEnv:                 config.EnvStage,
		ServiceName:            "prediction-pool-api",
		ServiceVersion:         "1.2.3",
		PyroscopeAppName:       "prediction-pool",
		PyroscopeServerAddress: "https://profiles.example.com",
		PyroscopeUploadRate:    15 * time.Second,
	})

	require.Equal(t, "prediction-pool", got.ApplicationName)
	require.Equal(t, "https://profiles.example.com", got.ServerAddress)
	require.Equal(t, map[string]string{"env": "stage", "service": "prediction-pool-api", "version": "1.2.3"}, got.Tags)
	require.Contains(t, got.ProfileTypes, pyroscope.ProfileCPU)
}
