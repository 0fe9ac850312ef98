package workers

import (
	"context"

	"infinite-experiment/airportd/internal/api"
	"infinite-experiment/airportd/internal/config"
)

type WorkersContainer struct {
	CacheWarmer *CacheWarmer
}

// InitWorkers starts the background workers the configuration enables. They stop with ctx.
func InitWorkers(ctx context.Context, cfg *config.Config, deps *api.Dependencies) *WorkersContainer {
	container := &WorkersContainer{}

	if deps.Services.Cache != nil && cfg.CacheWarmInterval > 0 {
		container.CacheWarmer = NewCacheWarmer(deps.Repo.Airports, deps.Services.Lookup)
		go container.CacheWarmer.Start(ctx, cfg.CacheWarmInterval)
	}

	return container
}
