package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It belongs to one supplier and one category and is deleted with either.
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null;index"`
	SupplierID   uint            `gorm:"not null;index"`
	Supplier     Supplier        `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	CategoryID   uint            `gorm:"not null;index"`
	Category     Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Timestamps
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) String() string {
	return p.Name
}

func (p *Product) Validate() error {
	return firstError(
		requireText("name", p.Name, ProductNameLength),
		requireID("supplier_id", p.SupplierID),
		requireID("category_id", p.CategoryID),
		CheckPrice("price_per_unit", p.PricePerUnit),
	)
}
