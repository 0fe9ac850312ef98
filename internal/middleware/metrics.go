package middleware

import (
	"net/http"
	"strconv"
	"time"

	reqctx "infinite-experiment/airportd/internal/context"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// MetricsMiddleware records HTTP metrics for each request and logs it once completed
func MetricsMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metricsReg.HTTPRequestsInFlight.Inc()
			defer metricsReg.HTTPRequestsInFlight.Dec()

			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			// The route pattern is only known once chi has routed the request.
			routePattern := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				routePattern = rctx.RoutePattern()
			}

			duration := time.Since(start).Seconds()
			statusCode := strconv.Itoa(wrapped.statusCode)

			metricsReg.HTTPRequestsTotal.WithLabelValues(
				routePattern,
				r.Method,
				statusCode,
			).Inc()

			metricsReg.HTTPRequestDuration.WithLabelValues(
				routePattern,
				r.Method,
			).Observe(duration)

			logging.Info("HTTP request completed",
				"request_id", reqctx.GetRequestID(r.Context()),
				"method", r.Method,
				"endpoint", routePattern,
				"path", r.URL.Path,
				"status_code", wrapped.statusCode,
				"duration_ms", int(duration*1000),
			)
		})
	}
}

// RequestIDMiddleware adds a request ID to the context if not present
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := reqctx.SetRequestID(r.Context(), requestID)

		// Add to response header for tracing
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}
