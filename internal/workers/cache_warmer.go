package workers

import (
	"context"
	"errors"
	"time"

	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/models/dtos"
	"infinite-experiment/airportd/internal/services"
)

// CodeLister lists the IATA codes present in the store.
type CodeLister interface {
	ListIATACodes(ctx context.Context) ([]string, error)
}

// CodeLookup is the lookup path the warmer drives; found documents land in its cache.
type CodeLookup interface {
	FindAirportByIATACode(ctx context.Context, code string) (*dtos.AirportResponse, error)
}

// CacheWarmer periodically runs every stored code through the lookup service.
type CacheWarmer struct {
	lister CodeLister
	lookup CodeLookup
}

// WarmStats is the result of one pass.
type WarmStats struct {
	Warmed   int
	NotFound int
	Failed   int
}

func NewCacheWarmer(lister CodeLister, lookup CodeLookup) *CacheWarmer {
	return &CacheWarmer{
		lister: lister,
		lookup: lookup,
	}
}

// Start warms immediately, then on every tick until ctx is cancelled.
func (w *CacheWarmer) Start(ctx context.Context, interval time.Duration) {
	logging.Info("[CacheWarmer] Starting", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Warm(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("[CacheWarmer] Shutting down")
			return
		case <-ticker.C:
			w.Warm(ctx)
		}
	}
}

// Warm runs one pass over the stored codes.
func (w *CacheWarmer) Warm(ctx context.Context) WarmStats {
	var stats WarmStats

	codes, err := w.lister.ListIATACodes(ctx)
	if err != nil {
		logging.Warn("[CacheWarmer] Failed to list codes", "error", err.Error())
		return stats
	}

	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}

		_, err := w.lookup.FindAirportByIATACode(ctx, code)
		switch {
		case err == nil:
			stats.Warmed++
		case errors.Is(err, services.ErrAirportNotFound):
			stats.NotFound++
		default:
			stats.Failed++
			logging.Warn("[CacheWarmer] Lookup failed", "code", code, "error", err.Error())
		}
	}

	logging.Debug("[CacheWarmer] Pass complete",
		"warmed", stats.Warmed,
		"not_found", stats.NotFound,
		"failed", stats.Failed,
	)
	return stats
}
