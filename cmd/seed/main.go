package main

import (
	"context"
	"log"
	"os"
	"time"

	"infinite-experiment/airportd/internal/common"
	"infinite-experiment/airportd/internal/config"
	"infinite-experiment/airportd/internal/db"
	"infinite-experiment/airportd/internal/logging"

	"gorm.io/gorm"
)

// Creates the tables and (re)loads the dataset into the configured store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	var orm *gorm.DB
	if cfg.DBDriver == config.DriverPostgres {
		orm, err = db.InitPostgresORM(cfg.PostgresDSN())
	} else {
		orm, err = db.InitSQLiteORM(cfg.SQLiteDSN)
	}
	if err != nil {
		logging.Error("Failed to open store", "error", err.Error())
		os.Exit(1)
	}

	if err := db.Migrate(orm); err != nil {
		logging.Error("Failed to migrate store", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Tables created")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	loader := common.NewDatasetLoaderService(orm, nil)
	if _, err := loader.Load(ctx, cfg.DatasetPath); err != nil {
		logging.Error("Failed to load dataset", "error", err.Error(), "path", cfg.DatasetPath)
		os.Exit(1)
	}

	stats, err := loader.GetStats(ctx)
	if err != nil {
		logging.Error("Failed to read table counts", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Store seeded",
		"countries", stats.Countries,
		"cities", stats.Cities,
		"airports", stats.Airports,
	)
}
