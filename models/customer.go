package models

import "strings"

// Customer is a buyer account with optional address and demographic data.
type Customer struct {
	ID uint `gorm:"primaryKey"`
	Principal
	MiddleName *string `gorm:"type:varchar(50)"`
	Age        *int    `gorm:"check:chk_customers_age,age >= 0"`
	Country    *string `gorm:"type:varchar(100)"`
	Street     *string `gorm:"type:varchar(150)"`
	Building   *string `gorm:"type:varchar(20)"`
	Apartment  *string `gorm:"type:varchar(20)"`
	PostalCode *string `gorm:"type:varchar(20)"`
}

// NewCustomer returns an active customer with the given username.
func NewCustomer(username string) *Customer {
	return &Customer{Principal: Principal{Username: username, IsActive: true}}
}

func (c *Customer) TableName() string {
	return "customers"
}

// DisplayName is "last first middle" with blanks trimmed, or the username
// when no name part is set.
func (c *Customer) DisplayName() string {
	middle := ""
	if c.MiddleName != nil {
		middle = *c.MiddleName
	}
	full := strings.TrimSpace(c.LastName + " " + c.FirstName + " " + middle)
	if full == "" {
		return c.Username
	}
	return full
}

func (c *Customer) String() string {
	return c.DisplayName()
}

func (c *Customer) Validate() error {
	if err := c.Principal.validate(); err != nil {
		return err
	}
	if c.Age != nil && *c.Age < 0 {
		return &ValidationError{Field: "age", Message: "must not be negative"}
	}
	return firstError(
		checkOptionalLength("middle_name", c.MiddleName, MiddleNameLength),
		checkOptionalLength("country", c.Country, CountryLength),
		checkOptionalLength("street", c.Street, StreetLength),
		checkOptionalLength("building", c.Building, BuildingLength),
		checkOptionalLength("apartment", c.Apartment, ApartmentLength),
		checkOptionalLength("postal_code", c.PostalCode, PostalCodeLength),
	)
}
