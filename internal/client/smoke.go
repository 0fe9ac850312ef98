package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

const notFoundBody = "Airport not found"

// Scenario is one scripted lookup and the check its result must pass.
type Scenario struct {
	Name  string
	Code  string
	Check func(*LookupResult) error
}

// ScenarioResult is the outcome of one scenario; Err is nil on success.
type ScenarioResult struct {
	Name string
	Err  error
}

// SmokeScenarios returns the fixture checks every deployment of the bundled dataset must pass.
func SmokeScenarios() []Scenario {
	return []Scenario{
		{Name: "full airport, city and country", Code: "AGR", Check: expectCountry("India")},
		{Name: "city without country", Code: "LCY", Check: expectNullCountry("LCY")},
		{Name: "unknown code", Code: "XYZ", Check: expectNotFound},
		{Name: "airport without city", Code: "JFK", Check: expectNotFound},
		{Name: "empty code", Code: "", Check: expectNotFound},
		{Name: "lower case code", Code: "agr", Check: expectCountry("India")},
		{Name: "padded mixed case code", Code: " aGr ", Check: expectCountry("India")},
	}
}

// RunSmoke runs every scenario in order, then replays the codes concurrentCopies times in parallel
// and checks each concurrent answer against the sequential one.
func RunSmoke(ctx context.Context, c *AirportClient, scenarios []Scenario, concurrentCopies int) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios)+1)
	sequential := make(map[string]*LookupResult, len(scenarios))

	for _, sc := range scenarios {
		res, err := c.Lookup(ctx, sc.Code)
		if err == nil {
			sequential[sc.Code] = res
			err = sc.Check(res)
		}
		results = append(results, ScenarioResult{Name: sc.Name, Err: err})
	}

	if concurrentCopies > 0 {
		results = append(results, ScenarioResult{
			Name: fmt.Sprintf("%d concurrent copies match sequential results", concurrentCopies),
			Err:  runConcurrent(ctx, c, sequential, concurrentCopies),
		})
	}

	return results
}

func runConcurrent(ctx context.Context, c *AirportClient, expected map[string]*LookupResult, copies int) error {
	if len(expected) == 0 {
		return errors.New("no sequential results to compare against")
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < copies; i++ {
		for code, want := range expected {
			code, want := code, want
			g.Go(func() error {
				got, err := c.Lookup(gctx, code)
				if err != nil {
					return err
				}
				if got.Status != want.Status || got.Body != want.Body {
					return fmt.Errorf("code %q: concurrent answer %d differs from sequential %d", code, got.Status, want.Status)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

func expectCountry(name string) func(*LookupResult) error {
	return func(res *LookupResult) error {
		if res.Status != http.StatusOK || res.Airport == nil {
			return fmt.Errorf("expected 200, got %d", res.Status)
		}
		country := res.Airport.Airport.Address.Country
		if country == nil || country.Name == nil || *country.Name != name {
			return fmt.Errorf("expected country %q", name)
		}
		return nil
	}
}

func expectNullCountry(iata string) func(*LookupResult) error {
	return func(res *LookupResult) error {
		if res.Status != http.StatusOK || res.Airport == nil {
			return fmt.Errorf("expected 200, got %d", res.Status)
		}
		airport := res.Airport.Airport
		if airport.IATACode == nil || *airport.IATACode != iata {
			return fmt.Errorf("expected iata_code %q", iata)
		}
		if airport.Address.Country != nil {
			return errors.New("expected country to be null")
		}
		if !strings.Contains(res.Body, `"country":null`) {
			return errors.New("expected country to be encoded as null")
		}
		return nil
	}
}

func expectNotFound(res *LookupResult) error {
	if res.Status != http.StatusNotFound || res.Body != notFoundBody {
		return fmt.Errorf("expected 404 %q, got %d %q", notFoundBody, res.Status, res.Body)
	}
	return nil
}
