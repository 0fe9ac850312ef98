package gorm

// Airport represents an airport record. City is resolved through CityID, which may be null or dangling.
type Airport struct {
	ID           uint     `gorm:"column:id;primaryKey;autoIncrement"`
	ICAOCode     *string  `gorm:"column:icao_code;type:varchar(8)"`
	IATACode     *string  `gorm:"column:iata_code;type:varchar(3);index"`
	Name         *string  `gorm:"column:name;type:text"`
	Type         *string  `gorm:"column:type;type:varchar(50)"`
	LatitudeDeg  *float64 `gorm:"column:latitude_deg;type:numeric(10,8)"`
	LongitudeDeg *float64 `gorm:"column:longitude_deg;type:numeric(11,8)"`
	ElevationFt  *int64   `gorm:"column:elevation_ft;type:integer"`
	CityID       *uint    `gorm:"column:city_id;index"`

	// Relationships
	City *City `gorm:"foreignKey:CityID"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
