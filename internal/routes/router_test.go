package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"infinite-experiment/airportd/internal/api"
	"infinite-experiment/airportd/internal/config"
	"infinite-experiment/airportd/internal/db"
	"infinite-experiment/airportd/internal/metrics"
	"infinite-experiment/airportd/internal/middleware"
	"infinite-experiment/airportd/internal/models/dtos"

	"github.com/prometheus/client_golang/prometheus"
)

// Setup a server over the bundled dataset for the given lookup backend
func setupServer(t *testing.T, backend string, opts RouterOptions) *httptest.Server {
	orm, err := db.InitSQLiteORM(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	sqlxDB, err := db.WrapSQLX(orm, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap sqlx: %v", err)
	}

	cfg := &config.Config{
		LookupBackend: backend,
		CacheDriver:   config.CacheMemory,
		CacheTTL:      time.Minute,
	}
	deps, err := api.InitDependencies(cfg, orm, sqlxDB, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("Failed to init dependencies: %v", err)
	}
	if _, err := deps.Services.Dataset.LoadEmbedded(context.Background()); err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}

	if opts.UpSince.IsZero() {
		opts.UpSince = time.Now()
	}
	srv := httptest.NewServer(RegisterRoutes(deps, opts))
	t.Cleanup(func() {
		srv.Close()
		deps.Close()
		sqlxDB.Close()
	})
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestAirportRoute_Scenarios(t *testing.T) {
	for _, backend := range []string{config.BackendGorm, config.BackendSQLX} {
		t.Run(backend, func(t *testing.T) {
			srv := setupServer(t, backend, RouterOptions{})

			// Full chain
			code, body := get(t, srv, "/airport/AGR")
			if code != http.StatusOK {
				t.Fatalf("AGR: expected 200, got %d", code)
			}
			var agr dtos.AirportResponse
			if err := json.Unmarshal([]byte(body), &agr); err != nil {
				t.Fatalf("AGR: failed to decode: %v", err)
			}
			if agr.Airport.ID != 1 || *agr.Airport.Address.Country.CountryCodeThree != "IND" {
				t.Errorf("AGR: unexpected document %s", body)
			}

			// Dangling country
			code, body = get(t, srv, "/airport/LCY")
			if code != http.StatusOK || !strings.Contains(body, `"country":null`) {
				t.Errorf("LCY: expected 200 with null country, got %d %s", code, body)
			}

			// Not found, city missing, empty code
			for _, path := range []string{"/airport/XYZ", "/airport/JFK", "/airport/", "/airport/%20%20"} {
				code, body := get(t, srv, path)
				if code != http.StatusNotFound || body != "Airport not found" {
					t.Errorf("%s: expected 404 Airport not found, got %d %q", path, code, body)
				}
			}

			// Normalization
			for _, path := range []string{"/airport/agr", "/airport/%20aGr%20"} {
				code, got := get(t, srv, path)
				if code != http.StatusOK {
					t.Errorf("%s: expected 200, got %d", path, code)
					continue
				}
				_, want := get(t, srv, "/airport/AGR")
				if got != want {
					t.Errorf("%s: expected same body as AGR\n got: %s\nwant: %s", path, got, want)
				}
			}
		})
	}
}

func TestAirportRoute_ConcurrentMatchesSequential(t *testing.T) {
	srv := setupServer(t, config.BackendGorm, RouterOptions{})
	paths := []string{"/airport/AGR", "/airport/LCY", "/airport/XYZ", "/airport/JFK", "/airport/", "/airport/agr"}

	expected := make(map[string]string, len(paths))
	for _, path := range paths {
		code, body := get(t, srv, path)
		expected[path] = fmt.Sprintf("%d %s", code, body)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	mismatches := 0
	for i := 0; i < 10; i++ {
		for _, path := range paths {
			path := path
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := http.Get(srv.URL + path)
				if err != nil {
					mu.Lock()
					mismatches++
					mu.Unlock()
					return
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)

				if fmt.Sprintf("%d %s", resp.StatusCode, body) != expected[path] {
					mu.Lock()
					mismatches++
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()

	if mismatches > 0 {
		t.Errorf("Expected concurrent answers to match sequential ones, %d differed", mismatches)
	}
}

func TestRouter_RequestIDAndHealth(t *testing.T) {
	srv := setupServer(t, config.BackendSQLX, RouterOptions{})

	resp, err := http.Get(srv.URL + "/healthCheck")
	if err != nil {
		t.Fatalf("GET /healthCheck failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a request id header")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	srv := setupServer(t, config.BackendGorm, RouterOptions{RateLimitRPS: 0.001, RateLimitBurst: 1})

	if code, _ := get(t, srv, "/airport/AGR"); code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", code)
	}
	if code, body := get(t, srv, "/airport/AGR"); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d %q", code, body)
	}
}
