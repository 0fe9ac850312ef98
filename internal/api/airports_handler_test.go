package api

import (
	"context"
	"encoding/json"
	"errors"
	"infinite-experiment/airportd/internal/models/dtos"
	"infinite-experiment/airportd/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Mock AirportLookupService
type mockAirportLookup struct {
	findFunc func(ctx context.Context, code string) (*dtos.AirportResponse, error)
}

func (m *mockAirportLookup) FindAirportByIATACode(ctx context.Context, code string) (*dtos.AirportResponse, error) {
	return m.findFunc(ctx, code)
}

func strPtr(s string) *string { return &s }

// serveLookup routes path through a chi router so the URL parameter is populated.
func serveLookup(svc AirportLookup, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/airport/{iata_code}", GetAirportByCodeHandler(svc))
	r.Get("/airport/", GetAirportByCodeHandler(svc))

	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetAirportByCodeHandler_Success(t *testing.T) {
	var gotCode string
	mockService := &mockAirportLookup{
		findFunc: func(ctx context.Context, code string) (*dtos.AirportResponse, error) {
			gotCode = code
			return &dtos.AirportResponse{
				Airport: dtos.AirportDetail{
					ID:       2,
					IATACode: strPtr("LCY"),
					Address: dtos.AirportAddress{
						City: dtos.CityDetail{ID: 2, Name: strPtr("London")},
					},
				},
			}, nil
		},
	}

	rr := serveLookup(mockService, "/airport/%20lCy%20")

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotCode != " lCy " {
		t.Errorf("Expected raw code to reach the service, got %q", gotCode)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	body := rr.Body.String()
	if !strings.Contains(body, `"country":null`) {
		t.Errorf("Expected explicit null country, got %s", body)
	}

	var response dtos.AirportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if *response.Airport.Address.City.Name != "London" {
		t.Errorf("Expected city London, got %q", *response.Airport.Address.City.Name)
	}
}

func TestGetAirportByCodeHandler_NotFound(t *testing.T) {
	mockService := &mockAirportLookup{
		findFunc: func(ctx context.Context, code string) (*dtos.AirportResponse, error) {
			return nil, services.ErrAirportNotFound
		},
	}

	for _, path := range []string{"/airport/XYZ", "/airport/"} {
		rr := serveLookup(mockService, path)

		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, rr.Code)
		}
		if rr.Body.String() != "Airport not found" {
			t.Errorf("%s: expected plain not-found body, got %q", path, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("%s: expected text/plain, got %q", path, ct)
		}
	}
}

func TestGetAirportByCodeHandler_StoreFailure(t *testing.T) {
	mockService := &mockAirportLookup{
		findFunc: func(ctx context.Context, code string) (*dtos.AirportResponse, error) {
			return nil, errors.New("lookup AGR: connection refused")
		},
	}

	rr := serveLookup(mockService, "/airport/AGR")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "error" {
		t.Errorf("Expected status error, got %s", response.Status)
	}
	if strings.Contains(response.Message, "connection refused") {
		t.Errorf("Store error leaked to client: %q", response.Message)
	}
}

type mockPinger struct{ err error }

func (m mockPinger) PingContext(ctx context.Context) error { return m.err }

type mockCounter struct {
	count int64
	err   error
}

func (m mockCounter) CountAirports(ctx context.Context) (int64, error) { return m.count, m.err }

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		pinger     mockPinger
		counter    mockCounter
		wantCode   int
		wantStatus string
	}{
		{"healthy", mockPinger{}, mockCounter{count: 10}, http.StatusOK, "ok"},
		{"store down", mockPinger{err: errors.New("refused")}, mockCounter{count: 10}, http.StatusServiceUnavailable, "down"},
		{"empty dataset", mockPinger{}, mockCounter{}, http.StatusServiceUnavailable, "down"},
		{"count failed", mockPinger{}, mockCounter{err: errors.New("no such table")}, http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := HealthCheckHandler(tt.pinger, tt.counter, time.Now().Add(-time.Minute))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest("GET", "/healthCheck", nil))

			if rr.Code != tt.wantCode {
				t.Errorf("Expected status %d, got %d", tt.wantCode, rr.Code)
			}

			var response struct {
				Status   string `json:"status"`
				Services map[string]struct {
					Status string `json:"status"`
				} `json:"services"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, response.Status)
			}
			if _, ok := response.Services["store"]; !ok {
				t.Error("Expected store entry")
			}
			if _, ok := response.Services["dataset"]; !ok {
				t.Error("Expected dataset entry")
			}
		})
	}
}
