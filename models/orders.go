package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase placed by a customer.
type Order struct {
	ID         uint        `gorm:"primaryKey"`
	CustomerID uint        `gorm:"not null;index"`
	Customer   Customer    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	OrderDate  time.Time   `gorm:"autoCreateTime;not null;index:,sort:desc"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o *Order) String() string {
	return fmt.Sprintf("order %d from %s", o.ID, o.Customer.DisplayName())
}

// Total is the sum of quantity times purchase price over the loaded items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItem is one product line of an order. The purchase price is captured
// when the line is created and does not follow later product price changes.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"not null;uniqueIndex:unique_order_product,priority:1"`
	ProductID     uint            `gorm:"not null;uniqueIndex:unique_order_product,priority:2"`
	Product       Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity      int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// NewOrderItem returns a line for productID with the default quantity.
func NewOrderItem(orderID, productID uint, price decimal.Decimal) *OrderItem {
	return &OrderItem{
		OrderID:       orderID,
		ProductID:     productID,
		Quantity:      DefaultOrderItemQuantity,
		PurchasePrice: price,
	}
}

func (i *OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) String() string {
	return fmt.Sprintf("%s x%d (order %d)", i.Product.Name, i.Quantity, i.OrderID)
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PurchasePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *OrderItem) Validate() error {
	return firstError(
		requireID("order_id", i.OrderID),
		requireID("product_id", i.ProductID),
		checkQuantity(i.Quantity),
		CheckPrice("purchase_price", i.PurchasePrice),
	)
}

func checkQuantity(q int) error {
	if q < 1 {
		return &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	return nil
}
