package dtos

// Dataset is the static seed document: three collections of flat records keyed by column name.
type Dataset struct {
	Countries []CountryRecord `json:"countries"`
	Cities    []CityRecord    `json:"cities"`
	Airports  []AirportRecord `json:"airports"`
}

type CountryRecord struct {
	ID               uint    `json:"id"`
	Name             *string `json:"name"`
	CountryCodeTwo   *string `json:"country_code_two"`
	CountryCodeThree *string `json:"country_code_three"`
	MobileCode       *string `json:"mobile_code"`
	ContinentID      *int64  `json:"continent_id"`
}

type CityRecord struct {
	ID        uint     `json:"id"`
	Name      *string  `json:"name"`
	CountryID *uint    `json:"country_id"`
	IsActive  *bool    `json:"is_active"`
	Lat       *float64 `json:"lat"`
	Long      *float64 `json:"long"`
}

type AirportRecord struct {
	ID           uint     `json:"id"`
	ICAOCode     *string  `json:"icao_code"`
	IATACode     *string  `json:"iata_code"`
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	LatitudeDeg  *float64 `json:"latitude_deg"`
	LongitudeDeg *float64 `json:"longitude_deg"`
	ElevationFt  *int64   `json:"elevation_ft"`
	CityID       *uint    `json:"city_id"`
}

// DatasetStats reports how many rows of each relation a load inserted.
type DatasetStats struct {
	Countries int `json:"countries"`
	Cities    int `json:"cities"`
	Airports  int `json:"airports"`
}
