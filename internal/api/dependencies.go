package api

import (
	"fmt"

	"infinite-experiment/airportd/internal/common"
	"infinite-experiment/airportd/internal/config"
	"infinite-experiment/airportd/internal/db/repositories"
	"infinite-experiment/airportd/internal/metrics"
	"infinite-experiment/airportd/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Airports    *repositories.AirportRepository
	AirportJoin *repositories.AirportJoinRepository
}

type Services struct {
	Cache   common.CacheInterface
	Lookup  *services.AirportLookupService
	Dataset *common.DatasetLoaderService
}

// Dependencies is the process-wide object graph, built once at startup and passed to the router.
type Dependencies struct {
	Repo     *Repositories
	Services *Services
	SQLX     *sqlx.DB
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies builds repositories and services over already-open store handles.
func InitDependencies(cfg *config.Config, orm *gorm.DB, sqlxDB *sqlx.DB, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Airports:    repositories.NewAirportRepository(orm),
		AirportJoin: repositories.NewAirportJoinRepository(sqlxDB),
	}

	cache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}

	var finder services.AirportFinder = repos.Airports
	if cfg.LookupBackend == config.BackendSQLX {
		finder = repos.AirportJoin
	}

	svcs := &Services{
		Cache:   cache,
		Lookup:  services.NewAirportLookupService(finder, cfg.LookupBackend, cache, cfg.CacheTTL, metricsReg),
		Dataset: common.NewDatasetLoaderService(orm, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		SQLX:     sqlxDB,
		Metrics:  metricsReg,
	}, nil
}

// Close releases the cache connection, if any.
func (d *Dependencies) Close() error {
	if d.Services.Cache == nil {
		return nil
	}
	return d.Services.Cache.Close()
}

func newCache(cfg *config.Config) (common.CacheInterface, error) {
	switch cfg.CacheDriver {
	case config.CacheMemory:
		return common.NewCacheService(cfg.CacheTTL, 10*cfg.CacheTTL), nil
	case config.CacheRedis:
		redisCache, err := common.NewRedisCacheService(cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		return redisCache, nil
	default:
		return nil, nil
	}
}
