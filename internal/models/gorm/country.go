package gorm

type Country struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name             *string `gorm:"column:name;type:varchar(100)"`
	CountryCodeTwo   *string `gorm:"column:country_code_two;type:varchar(2)"`
	CountryCodeThree *string `gorm:"column:country_code_three;type:varchar(3)"`
	MobileCode       *string `gorm:"column:mobile_code;type:varchar(16)"`
	ContinentID      *int64  `gorm:"column:continent_id;type:integer"`
}

// TableName specifies the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// Models lists every table the store migrates, parents first.
func Models() []interface{} {
	return []interface{}{&Country{}, &City{}, &Airport{}}
}
