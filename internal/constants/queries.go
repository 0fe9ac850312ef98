package constants

const (
	// GetAirportDetailByIATA resolves one airport with its city (required) and the city's country (optional).
	// The lowest airport id is picked before joining, so a duplicate code never falls through to a later row.
	GetAirportDetailByIATA = `
	SELECT
		a.id, a.icao_code, a.iata_code, a.name, a.type,
		a.latitude_deg, a.longitude_deg, a.elevation_ft,
		c.id AS city_id, c.name AS city_name, c.country_id AS city_country_id,
		c.is_active AS city_is_active, c.lat AS city_lat, c."long" AS city_long,
		co.id AS country_id, co.name AS country_name,
		co.country_code_two, co.country_code_three, co.mobile_code, co.continent_id
	FROM airports a
	INNER JOIN cities c ON c.id = a.city_id
	LEFT JOIN countries co ON co.id = c.country_id
	WHERE a.id = (SELECT MIN(id) FROM airports WHERE iata_code = ?)
	`

	CountAirports = `SELECT COUNT(*) FROM airports`
)
