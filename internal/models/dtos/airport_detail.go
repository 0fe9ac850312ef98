package dtos

// AirportResponse is the document served by GET /airport/{iata_code}.
type AirportResponse struct {
	Airport AirportDetail `json:"airport"`
}

// AirportDetail combines an airport with its city and, when it resolves, the city's country.
// Nullable columns stay pointers so they encode as null instead of being dropped.
type AirportDetail struct {
	ID           uint           `json:"id"`
	ICAOCode     *string        `json:"icao_code"`
	IATACode     *string        `json:"iata_code"`
	Name         *string        `json:"name"`
	Type         *string        `json:"type"`
	LatitudeDeg  *float64       `json:"latitude_deg"`
	LongitudeDeg *float64       `json:"longitude_deg"`
	ElevationFt  *int64         `json:"elevation_ft"`
	Address      AirportAddress `json:"address"`
}

type AirportAddress struct {
	City    CityDetail     `json:"city"`
	Country *CountryDetail `json:"country"`
}

type CityDetail struct {
	ID        uint     `json:"id"`
	Name      *string  `json:"name"`
	CountryID *uint    `json:"country_id"`
	IsActive  *bool    `json:"is_active"`
	Lat       *float64 `json:"lat"`
	Long      *float64 `json:"long"`
}

type CountryDetail struct {
	ID               uint    `json:"id"`
	Name             *string `json:"name"`
	CountryCodeTwo   *string `json:"country_code_two"`
	CountryCodeThree *string `json:"country_code_three"`
	MobileCode       *string `json:"mobile_code"`
	ContinentID      *int64  `json:"continent_id"`
}
