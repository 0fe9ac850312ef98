package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"infinite-experiment/airportd/internal/constants"
	"infinite-experiment/airportd/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// AirportJoinRepository resolves airports with a single explicit SQL join instead of gorm preloads.
type AirportJoinRepository struct {
	db *sqlx.DB
}

func NewAirportJoinRepository(db *sqlx.DB) *AirportJoinRepository {
	return &AirportJoinRepository{db: db}
}

type airportJoinRow struct {
	ID           uint            `db:"id"`
	ICAOCode     sql.NullString  `db:"icao_code"`
	IATACode     sql.NullString  `db:"iata_code"`
	Name         sql.NullString  `db:"name"`
	Type         sql.NullString  `db:"type"`
	LatitudeDeg  sql.NullFloat64 `db:"latitude_deg"`
	LongitudeDeg sql.NullFloat64 `db:"longitude_deg"`
	ElevationFt  sql.NullInt64   `db:"elevation_ft"`

	CityID        uint            `db:"city_id"`
	CityName      sql.NullString  `db:"city_name"`
	CityCountryID sql.NullInt64   `db:"city_country_id"`
	CityIsActive  sql.NullBool    `db:"city_is_active"`
	CityLat       sql.NullFloat64 `db:"city_lat"`
	CityLong      sql.NullFloat64 `db:"city_long"`

	CountryID        sql.NullInt64  `db:"country_id"`
	CountryName      sql.NullString `db:"country_name"`
	CountryCodeTwo   sql.NullString `db:"country_code_two"`
	CountryCodeThree sql.NullString `db:"country_code_three"`
	MobileCode       sql.NullString `db:"mobile_code"`
	ContinentID      sql.NullInt64  `db:"continent_id"`
}

// FindByIATA returns the airport with its city and optional country, or nil when no airport
// with a resolvable city carries the code.
func (r *AirportJoinRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var row airportJoinRow

	err := r.db.GetContext(ctx, &row, r.db.Rebind(constants.GetAirportDetailByIATA), iata)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airport: %w", err)
	}

	return row.toModel(), nil
}

// CountAirports is used by the health check to confirm the dataset is loaded.
func (r *AirportJoinRepository) CountAirports(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, constants.CountAirports); err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return count, nil
}

func (row airportJoinRow) toModel() *gorm.Airport {
	cityID := row.CityID
	city := &gorm.City{
		ID:        row.CityID,
		Name:      nullString(row.CityName),
		CountryID: nullUint(row.CityCountryID),
		IsActive:  nullBool(row.CityIsActive),
		Lat:       nullFloat(row.CityLat),
		Long:      nullFloat(row.CityLong),
	}

	if row.CountryID.Valid {
		city.Country = &gorm.Country{
			ID:               uint(row.CountryID.Int64),
			Name:             nullString(row.CountryName),
			CountryCodeTwo:   nullString(row.CountryCodeTwo),
			CountryCodeThree: nullString(row.CountryCodeThree),
			MobileCode:       nullString(row.MobileCode),
			ContinentID:      nullInt(row.ContinentID),
		}
	}

	return &gorm.Airport{
		ID:           row.ID,
		ICAOCode:     nullString(row.ICAOCode),
		IATACode:     nullString(row.IATACode),
		Name:         nullString(row.Name),
		Type:         nullString(row.Type),
		LatitudeDeg:  nullFloat(row.LatitudeDeg),
		LongitudeDeg: nullFloat(row.LongitudeDeg),
		ElevationFt:  nullInt(row.ElevationFt),
		CityID:       &cityID,
		City:         city,
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullUint(v sql.NullInt64) *uint {
	if !v.Valid {
		return nil
	}
	u := uint(v.Int64)
	return &u
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
