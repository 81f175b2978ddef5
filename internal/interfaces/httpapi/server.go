package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

// MetricsExporter exposes the Prometheus scrape endpoint and records per-route request metrics.
type MetricsExporter interface {
	Handler() http.Handler
	ObserveHTTP(route string, status int, duration time.Duration)
}

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	metrics MetricsExporter,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metrics)
	registerPublicRoutes(mux, handler)
	registerInternalRoutes(mux, handler, internalJobToken)

	var routed http.Handler = mux
	if metrics != nil {
		routed = RequestMetrics(metrics, mux)
	}

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, routed))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
