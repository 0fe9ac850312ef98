package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinite-experiment/airportd/internal/api"
	"infinite-experiment/airportd/internal/config"
	"infinite-experiment/airportd/internal/db"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/metrics"
	"infinite-experiment/airportd/internal/routes"
	"infinite-experiment/airportd/internal/workers"

	"github.com/getsentry/sentry-go"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// @title Airport Lookup API
// @version 1.0
// @description Read-only airport lookup by IATA code.
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("airportd starting up",
		"db_driver", cfg.DBDriver,
		"lookup_backend", cfg.LookupBackend,
		"cache_driver", cfg.CacheDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			logging.Fatal("Failed to initialize Sentry", "error", err.Error())
		}
		defer sentry.Flush(2 * time.Second)
	}

	orm, sqlxDB, err := openStore(cfg)
	if err != nil {
		logging.Fatal("Failed to open store", "error", err.Error())
	}
	defer sqlxDB.Close()

	if err := db.Migrate(orm); err != nil {
		logging.Fatal("Failed to migrate store", "error", err.Error())
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, orm, sqlxDB, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedOnStart {
		if _, err := deps.Services.Dataset.Load(ctx, cfg.DatasetPath); err != nil {
			logging.Fatal("Failed to load dataset", "error", err.Error(), "path", cfg.DatasetPath)
		}
	}

	workers.InitWorkers(ctx, cfg, deps)

	router := routes.RegisterRoutes(deps, routes.RouterOptions{
		UpSince:        time.Now(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}

// openStore opens the gorm handle used for migration, seeding and the gorm lookup backend,
// plus the sqlx handle used by the join backend and the health check.
func openStore(cfg *config.Config) (*gorm.DB, *sqlx.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		orm, err := db.InitPostgresORM(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		sqlxDB, err := db.InitPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		logging.Info("Connected to Postgres (GORM + sqlx)")
		return orm, sqlxDB, nil
	}

	orm, err := db.InitSQLiteORM(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlxDB, err := db.WrapSQLX(orm, "sqlite3")
	if err != nil {
		return nil, nil, err
	}
	logging.Info("Opened SQLite store", "dsn", cfg.SQLiteDSN)
	return orm, sqlxDB, nil
}
