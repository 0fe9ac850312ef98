// Package client is an HTTP client for the airport lookup service, used by airportctl.
//
// See https://github.com/go-resty/resty for more information.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"infinite-experiment/airportd/internal/models/dtos"

	"github.com/go-resty/resty/v2"
)

// AirportClient is a REST client bound to one server.
type AirportClient struct {
	http *resty.Client
}

// LookupResult is one round trip to GET /airport/{iata_code}.
// Airport is set only for 200 responses.
type LookupResult struct {
	Code    string
	Status  int
	Body    string
	Airport *dtos.AirportResponse
}

func NewAirportClient(baseURL string, timeout time.Duration) *AirportClient {
	return &AirportClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json, text/plain"),
	}
}

// Lookup requests one code exactly as given; the server does the normalization.
func (c *AirportClient) Lookup(ctx context.Context, code string) (*LookupResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/airport/" + url.PathEscape(code))
	if err != nil {
		return nil, fmt.Errorf("request for %q failed: %w", code, err)
	}

	result := &LookupResult{
		Code:   code,
		Status: resp.StatusCode(),
		Body:   string(resp.Body()),
	}

	if result.Status == http.StatusOK {
		var airport dtos.AirportResponse
		if err := json.Unmarshal(resp.Body(), &airport); err != nil {
			return nil, fmt.Errorf("invalid airport document for %q: %w", code, err)
		}
		result.Airport = &airport
	}

	return result, nil
}
