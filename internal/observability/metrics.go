package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	basecache "github.com/riskibarqy/prediction-pool/internal/platform/cache"
)

const metricsNamespace = "prediction_pool"

// Metrics owns a private registry so tests and multiple app instances do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	evaluations        *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	pointsRecords      prometheus.Counter
	betFailures        prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "entity_evaluations_total",
				Help:      "Entity evaluation runs by result",
			},
			[]string{"result"},
		),
		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "entity_evaluation_duration_seconds",
				Help:      "Wall time of one entity evaluation",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"result"},
		),
		pointsRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "points_records_written_total",
			Help:      "Points records upserted into the ledger",
		}),
		betFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bet_evaluation_failures_total",
			Help:      "Bets that could not be scored during evaluation",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.evaluations,
		m.evaluationDuration,
		m.pointsRecords,
		m.betFailures,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveEvaluation(result string, d time.Duration) {
	m.evaluations.WithLabelValues(result).Inc()
	m.evaluationDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) AddPointsRecords(n int) {
	if n > 0 {
		m.pointsRecords.Add(float64(n))
	}
}

func (m *Metrics) AddBetFailures(n int) {
	if n > 0 {
		m.betFailures.Add(float64(n))
	}
}

// ObserveHTTP expects the route pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RegisterCache exports hit, miss and size figures of an in-process cache.
func (m *Metrics) RegisterCache(name string, store *basecache.Store) {
	if store == nil {
		return
	}
	labels := prometheus.Labels{"cache": name}
	m.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "cache_hits_total",
			Help:        "Cache lookups served from memory",
			ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "cache_misses_total",
			Help:        "Cache lookups that ran the loader",
			ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "cache_entries",
			Help:        "Entries currently held by the cache",
			ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Entries) }),
	)
}
