package repositories

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/airportd/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByIATA finds the airport with the given (already normalized) IATA code and preloads
// its city and the city's country. A null or dangling reference leaves the association nil.
// First orders by primary key, so duplicate codes always resolve to the lowest id.
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Preload("City.Country").
		Where("iata_code = ?", iata).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airport: %w", err)
	}

	return &airport, nil
}

// ListIATACodes returns every distinct non-null IATA code in ascending order
func (r *AirportRepository) ListIATACodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&gorm.Airport{}).
		Where("iata_code IS NOT NULL").
		Distinct().
		Order("iata_code").
		Pluck("iata_code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list iata codes: %w", err)
	}
	return codes, nil
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) error {
	if len(airports) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		CreateInBatches(airports, 100).Error
}

// DeleteAll deletes all airports (useful for re-importing)
func (r *AirportRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Airport{}).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
