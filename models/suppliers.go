package models

// Supplier is an organization that products are purchased from.
type Supplier struct {
	ID               uint   `gorm:"primaryKey"`
	NameOrganization string `gorm:"type:varchar(200);not null"`
	Country          string `gorm:"type:varchar(100);not null"`
	City             string `gorm:"type:varchar(100);not null"`
	Street           string `gorm:"type:varchar(150);not null"`
	Building         string `gorm:"type:varchar(20);not null"`
	Timestamps
}

func (s *Supplier) TableName() string {
	return "suppliers"
}

func (s *Supplier) String() string {
	return s.NameOrganization
}

// Validate checks the supplier's fields against the column limits.
func (s *Supplier) Validate() error {
	return firstError(
		requireText("name_organization", s.NameOrganization, NameOrganizationLength),
		requireText("country", s.Country, CountryLength),
		requireText("city", s.City, CityLength),
		requireText("street", s.Street, StreetLength),
		requireText("building", s.Building, BuildingLength),
	)
}
