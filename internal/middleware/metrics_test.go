package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	reqctx "infinite-experiment/airportd/internal/context"
	"infinite-experiment/airportd/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestIDMiddleware_Generates(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/airport/AGR", nil))

	if seen == "" {
		t.Fatal("Expected request id in context")
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("Expected header %q to match context %q", got, seen)
	}
}

func TestRequestIDMiddleware_KeepsIncoming(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/airport/AGR", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected incoming id to be echoed, got %q", got)
	}
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(reg))
	r.Get("/airport/{iata_code}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, code := range []string{"XYZ", "ABC"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/airport/"+code, nil))
	}

	got := testutil.ToFloat64(reg.HTTPRequestsTotal.WithLabelValues("/airport/{iata_code}", "GET", "404"))
	if got != 2 {
		t.Errorf("Expected 2 requests under the route pattern, got %v", got)
	}
	if inFlight := testutil.ToFloat64(reg.HTTPRequestsInFlight); inFlight != 0 {
		t.Errorf("Expected no requests in flight, got %v", inFlight)
	}
}

func TestRateLimiter_RejectsBurst(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/airport/AGR", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 200 429], got %v", codes)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest("GET", "/airport/AGR", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for a second client, got %d", rr.Code)
	}
}
