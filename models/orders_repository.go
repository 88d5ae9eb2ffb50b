package models

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

type OrderFilters struct {
	CustomerID *uint
}

// OrderLine is one requested product of a new order. A nil Quantity means
// DefaultOrderItemQuantity and a nil PurchasePrice means the product's
// current price.
type OrderLine struct {
	ProductID     uint
	Quantity      *int
	PurchasePrice *decimal.Decimal
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// GetOrders lists orders newest first.
func (r *OrdersRepository) GetOrders(ctx context.Context, page Page, filters OrderFilters) ([]Order, int64, error) {
	var orders []Order
	var total int64

	page = page.normalize()
	db := r.db.WithContext(ctx)
	scope := func(q *gorm.DB) *gorm.DB {
		if filters.CustomerID != nil {
			return q.Where("customer_id = ?", *filters.CustomerID)
		}
		return q
	}

	if err := db.Model(&Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Scopes(scope).
		Preload("Customer").
		Order("order_date DESC").Order("id DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrdersRepository) GetByID(ctx context.Context, id uint) (*Order, error) {
	return getOrder(r.db.WithContext(ctx), id)
}

func getOrder(db *gorm.DB, id uint) (*Order, error) {
	var order Order
	if err := db.
		Preload("Customer").
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		return nil, translateError(err, ErrOrderNotFound)
	}
	return &order, nil
}

// CreateOrder inserts an empty order for the customer. The order date is
// always the insertion time.
func (r *OrdersRepository) CreateOrder(ctx context.Context, o *Order) error {
	if err := requireID("customer_id", o.CustomerID); err != nil {
		return err
	}
	o.ID = 0
	o.OrderDate = time.Time{}
	return translateError(
		r.db.WithContext(ctx).Omit("Customer", "Items").Create(o).Error,
		ErrOrderNotFound,
	)
}

// ReassignOrder moves the order to another customer. The order date is kept.
func (r *OrdersRepository) ReassignOrder(ctx context.Context, id, customerID uint) (*Order, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	res := db.Model(&Order{}).Where("id = ?", id).Update("customer_id", customerID)
	if res.Error != nil {
		return nil, translateError(res.Error, ErrOrderNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return getOrder(db, id)
}

// DeleteOrder removes the order and all of its lines.
func (r *OrdersRepository) DeleteOrder(ctx context.Context, id uint) error {
	return deleteRecord(r.db.WithContext(ctx), &Order{}, id, ErrOrderNotFound)
}

// PlaceOrder creates an order with its lines and takes the ordered quantities
// out of stock, all in one transaction. Any failing line rolls back the whole
// order.
func (r *OrdersRepository) PlaceOrder(ctx context.Context, customerID uint, lines []OrderLine) (*Order, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "items", Message: "must contain at least one line"}
	}

	var placed *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := &Order{CustomerID: customerID}
		if err := tx.Omit("Customer", "Items").Create(order).Error; err != nil {
			return translateError(err, ErrOrderNotFound)
		}

		// Stock rows are locked in product id order so concurrent orders
		// over the same products cannot deadlock.
		sorted := slices.Clone(lines)
		slices.SortStableFunc(sorted, func(a, b OrderLine) int {
			return cmp.Compare(a.ProductID, b.ProductID)
		})

		seen := make(map[uint]bool, len(sorted))
		for _, line := range sorted {
			if seen[line.ProductID] {
				return ErrDuplicateOrderItem
			}
			seen[line.ProductID] = true

			item, err := newLineItem(tx, order.ID, line)
			if err != nil {
				return err
			}
			if err := tx.Omit("Product").Create(item).Error; err != nil {
				return translateError(err, ErrOrderItemNotFound)
			}
			if err := decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, ErrStockNotFound) {
					return ErrInsufficientStock
				}
				return err
			}
		}

		var err error
		placed, err = getOrder(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func newLineItem(tx *gorm.DB, orderID uint, line OrderLine) (*OrderItem, error) {
	if err := requireID("product_id", line.ProductID); err != nil {
		return nil, err
	}
	var product Product
	if err := tx.Select("id", "price_per_unit").First(&product, line.ProductID).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}

	item := NewOrderItem(orderID, product.ID, product.PricePerUnit)
	if line.Quantity != nil {
		item.Quantity = *line.Quantity
	}
	if line.PurchasePrice != nil {
		item.PurchasePrice = *line.PurchasePrice
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *OrdersRepository) GetItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	var items []OrderItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem inserts a single line into an existing order. A second line for
// the same product fails with ErrDuplicateOrderItem.
func (r *OrdersRepository) AddItem(ctx context.Context, item *OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.ID = 0
	db := r.db.WithContext(ctx)
	if err := db.Omit("Product").Create(item).Error; err != nil {
		return translateError(err, ErrOrderItemNotFound)
	}
	return translateError(db.Preload("Product").First(item, item.ID).Error, ErrOrderItemNotFound)
}

// UpdateItemQuantity changes the quantity of one line of the order.
func (r *OrdersRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID uint, quantity int) (*OrderItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	res := db.Model(&OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, translateError(res.Error, ErrOrderItemNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderItemNotFound
	}
	var item OrderItem
	if err := db.Preload("Product").First(&item, itemID).Error; err != nil {
		return nil, translateError(err, ErrOrderItemNotFound)
	}
	return &item, nil
}

func (r *OrdersRepository) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Delete(&OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}
