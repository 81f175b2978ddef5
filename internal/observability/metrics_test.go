package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	basecache "github.com/riskibarqy/prediction-pool/internal/platform/cache"
)

func TestMetrics_RecordsEvaluations(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveEvaluation("succeeded", 20*time.Millisecond)
	m.ObserveEvaluation("succeeded", 30*time.Millisecond)
	m.ObserveEvaluation("partial", time.Millisecond)
	m.AddPointsRecords(12)
	m.AddPointsRecords(0)
	m.AddBetFailures(1)

	if got := testutil.ToFloat64(m.evaluations.WithLabelValues("succeeded")); got != 2 {
		t.Fatalf("unexpected succeeded count: %v", got)
	}
	if got := testutil.ToFloat64(m.pointsRecords); got != 12 {
		t.Fatalf("unexpected points records count: %v", got)
	}
	if got := testutil.ToFloat64(m.betFailures); got != 1 {
		t.Fatalf("unexpected bet failures count: %v", got)
	}
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTP("GET /v1/leagues/{leagueID}/leaderboard", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `prediction_pool_http_requests_total{code="200",route="GET /v1/leagues/{leagueID}/leaderboard"} 1`) {
		t.Fatalf("expected http request sample in exposition, got:\n%s", body)
	}
}

func TestMetrics_RegisterCache(t *testing.T) {
	t.Parallel()

	store := basecache.NewStore(time.Minute)
	load := func(context.Context) (string, error) { return "board", nil }
	for range 3 {
		if _, err := basecache.Load(context.Background(), store, "leaderboard:league-a", load); err != nil {
			t.Fatalf("load: %v", err)
		}
	}

	m := NewMetrics()
	m.RegisterCache("repository", store)
	m.RegisterCache("disabled", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`prediction_pool_cache_hits_total{cache="repository"} 2`,
		`prediction_pool_cache_misses_total{cache="repository"} 1`,
		`prediction_pool_cache_entries{cache="repository"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition, got:\n%s", want, body)
		}
	}
}
