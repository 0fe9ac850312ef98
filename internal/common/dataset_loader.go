package common

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"infinite-experiment/airportd/internal/db/repositories"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/metrics"
	"infinite-experiment/airportd/internal/models/dtos"
	"infinite-experiment/airportd/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

//go:embed data/dataset.json
var embeddedDataset []byte

// DatasetLoaderService replaces the contents of the countries, cities and airports tables
// with a static dataset.
type DatasetLoaderService struct {
	db      *gormlib.DB
	metrics *metrics.MetricsRegistry
}

// NewDatasetLoaderService creates a new dataset loader. metricsReg may be nil.
func NewDatasetLoaderService(db *gormlib.DB, metricsReg *metrics.MetricsRegistry) *DatasetLoaderService {
	return &DatasetLoaderService{
		db:      db,
		metrics: metricsReg,
	}
}

// LoadFromJSON loads a dataset from a JSON reader
// Expected format: {"countries": [...], "cities": [...], "airports": [...]}
// where every record is a flat object keyed by column name.
func (s *DatasetLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (*dtos.DatasetStats, error) {
	var dataset dtos.Dataset
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&dataset); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	if len(dataset.Airports) == 0 {
		return nil, fmt.Errorf("no airport data found in dataset")
	}

	countries, cities, airports := toModels(dataset)

	// Delete children before parents, insert parents before children.
	err := s.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		airportRepo := repositories.NewAirportRepository(tx)
		cityRepo := repositories.NewCityRepository(tx)
		countryRepo := repositories.NewCountryRepository(tx)

		if err := airportRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete existing airports: %w", err)
		}
		if err := cityRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete existing cities: %w", err)
		}
		if err := countryRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete existing countries: %w", err)
		}

		if err := countryRepo.BatchInsert(ctx, countries); err != nil {
			return fmt.Errorf("failed to insert countries: %w", err)
		}
		if err := cityRepo.BatchInsert(ctx, cities); err != nil {
			return fmt.Errorf("failed to insert cities: %w", err)
		}
		if err := airportRepo.BatchInsert(ctx, airports); err != nil {
			return fmt.Errorf("failed to insert airports: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := &dtos.DatasetStats{
		Countries: len(countries),
		Cities:    len(cities),
		Airports:  len(airports),
	}

	if s.metrics != nil {
		s.metrics.DatasetRowsLoaded.WithLabelValues("countries").Set(float64(stats.Countries))
		s.metrics.DatasetRowsLoaded.WithLabelValues("cities").Set(float64(stats.Cities))
		s.metrics.DatasetRowsLoaded.WithLabelValues("airports").Set(float64(stats.Airports))
	}

	logging.Info("Dataset loaded",
		"countries", stats.Countries,
		"cities", stats.Cities,
		"airports", stats.Airports,
	)

	return stats, nil
}

// LoadEmbedded loads the dataset compiled into the binary.
func (s *DatasetLoaderService) LoadEmbedded(ctx context.Context) (*dtos.DatasetStats, error) {
	return s.LoadFromJSON(ctx, bytes.NewReader(embeddedDataset))
}

// LoadFromFile loads a dataset from disk.
func (s *DatasetLoaderService) LoadFromFile(ctx context.Context, path string) (*dtos.DatasetStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	return s.LoadFromJSON(ctx, f)
}

// Load picks the file at path, or the embedded dataset when path is empty.
func (s *DatasetLoaderService) Load(ctx context.Context, path string) (*dtos.DatasetStats, error) {
	if path == "" {
		return s.LoadEmbedded(ctx)
	}
	return s.LoadFromFile(ctx, path)
}

// GetStats returns row counts of the three tables
func (s *DatasetLoaderService) GetStats(ctx context.Context) (*dtos.DatasetStats, error) {
	countries, err := repositories.NewCountryRepository(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := repositories.NewCityRepository(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	airports, err := repositories.NewAirportRepository(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dtos.DatasetStats{
		Countries: int(countries),
		Cities:    int(cities),
		Airports:  int(airports),
	}, nil
}

func toModels(dataset dtos.Dataset) ([]gorm.Country, []gorm.City, []gorm.Airport) {
	countries := make([]gorm.Country, 0, len(dataset.Countries))
	for _, raw := range dataset.Countries {
		countries = append(countries, gorm.Country{
			ID:               raw.ID,
			Name:             trimPtr(raw.Name),
			CountryCodeTwo:   normalizeCodePtr(raw.CountryCodeTwo),
			CountryCodeThree: normalizeCodePtr(raw.CountryCodeThree),
			MobileCode:       trimPtr(raw.MobileCode),
			ContinentID:      raw.ContinentID,
		})
	}

	cities := make([]gorm.City, 0, len(dataset.Cities))
	for _, raw := range dataset.Cities {
		cities = append(cities, gorm.City{
			ID:        raw.ID,
			Name:      trimPtr(raw.Name),
			CountryID: raw.CountryID,
			IsActive:  raw.IsActive,
			Lat:       raw.Lat,
			Long:      raw.Long,
		})
	}

	airports := make([]gorm.Airport, 0, len(dataset.Airports))
	for _, raw := range dataset.Airports {
		airports = append(airports, gorm.Airport{
			ID:           raw.ID,
			ICAOCode:     normalizeCodePtr(raw.ICAOCode),
			IATACode:     normalizeCodePtr(raw.IATACode),
			Name:         trimPtr(raw.Name),
			Type:         trimPtr(raw.Type),
			LatitudeDeg:  raw.LatitudeDeg,
			LongitudeDeg: raw.LongitudeDeg,
			ElevationFt:  raw.ElevationFt,
			CityID:       raw.CityID,
		})
	}

	return countries, cities, airports
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}
