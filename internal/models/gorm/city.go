package gorm

// City represents a city record. CountryID may be null or point to a missing country.
type City struct {
	ID        uint     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      *string  `gorm:"column:name;type:varchar(100)"`
	CountryID *uint    `gorm:"column:country_id;index"`
	IsActive  *bool    `gorm:"column:is_active"`
	Lat       *float64 `gorm:"column:lat;type:numeric(10,8)"`
	Long      *float64 `gorm:"column:long;type:numeric(11,8)"`

	// Relationships
	Country *Country `gorm:"foreignKey:CountryID"`
}

// TableName specifies the table name for GORM
func (City) TableName() string {
	return "cities"
}
