package repositories

import (
	"context"

	"infinite-experiment/airportd/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// CountryRepository handles country table operations
type CountryRepository struct {
	db *gormlib.DB
}

func NewCountryRepository(db *gormlib.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) BatchInsert(ctx context.Context, countries []gorm.Country) error {
	if len(countries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		CreateInBatches(countries, 100).Error
}

func (r *CountryRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Country{}).Error
}

func (r *CountryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Country{}).Count(&count).Error
	return count, err
}
