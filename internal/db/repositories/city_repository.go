package repositories

import (
	"context"

	"infinite-experiment/airportd/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// CityRepository handles city table operations
type CityRepository struct {
	db *gormlib.DB
}

func NewCityRepository(db *gormlib.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) BatchInsert(ctx context.Context, cities []gorm.City) error {
	if len(cities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		CreateInBatches(cities, 100).Error
}

func (r *CityRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.City{}).Error
}

func (r *CityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.City{}).Count(&count).Error
	return count, err
}
