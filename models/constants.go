package models

// Field length limits shared by all entities.
const (
	NameOrganizationLength = 200
	CountryLength          = 100
	CityLength             = 100
	StreetLength           = 150
	BuildingLength         = 20
	CategoryNameLength     = 255
	ProductNameLength      = 255
	MiddleNameLength       = 50
	PostalCodeLength       = 20
	ApartmentLength        = 20
)

// Principal field limits.
const (
	UsernameLength     = 150
	FirstNameLength    = 150
	LastNameLength     = 150
	EmailLength        = 254
	PasswordHashLength = 128
)

// Monetary columns are stored as decimal(PriceDigits, PriceFractionalDigits).
const (
	PriceDigits           = 10
	PriceFractionalDigits = 2
)

// Default quantities.
const (
	DefaultStockQuantity     = 0
	DefaultOrderItemQuantity = 1
)

// MaxStockAdjustment bounds a single restock.
const MaxStockAdjustment = 1_000_000_000
