package models

import "fmt"

// Stock is the on-hand quantity of a single product.
type Stock struct {
	ID        uint    `gorm:"primaryKey"`
	ProductID uint    `gorm:"not null;uniqueIndex"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int     `gorm:"not null;default:0;check:chk_stocks_quantity,quantity >= 0"`
}

// NewStock returns a stock record for productID holding the default quantity.
func NewStock(productID uint) *Stock {
	return &Stock{ProductID: productID, Quantity: DefaultStockQuantity}
}

func (s *Stock) TableName() string {
	return "stocks"
}

func (s *Stock) String() string {
	return fmt.Sprintf("%s: %d", s.Product.Name, s.Quantity)
}

func (s *Stock) Validate() error {
	if err := requireID("product_id", s.ProductID); err != nil {
		return err
	}
	if s.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	return nil
}
