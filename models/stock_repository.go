package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) GetByProduct(ctx context.Context, productID uint) (*Stock, error) {
	var stock Stock
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("product_id = ?", productID).
		First(&stock).Error; err != nil {
		return nil, translateError(err, ErrStockNotFound)
	}
	return &stock, nil
}

// CreateStock inserts the stock record of a product. A product holds at most
// one stock record; a second one fails with ErrDuplicate.
func (r *StockRepository) CreateStock(ctx context.Context, s *Stock) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.ID = 0
	return translateError(r.db.WithContext(ctx).Omit("Product").Create(s).Error, ErrStockNotFound)
}

// SetQuantity stores quantity for the product, creating the stock record
// when the product has none yet.
func (r *StockRepository) SetQuantity(ctx context.Context, productID uint, quantity int) (*Stock, error) {
	stock := &Stock{ProductID: productID, Quantity: quantity}
	if err := stock.Validate(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(stock).Error
	if err != nil {
		return nil, translateError(err, ErrStockNotFound)
	}
	return r.GetByProduct(ctx, productID)
}

// Restock atomically adds amount to the product's stock.
func (r *StockRepository) Restock(ctx context.Context, productID uint, amount int) (*Stock, error) {
	if amount < 1 {
		return nil, &ValidationError{Field: "amount", Message: "must be a positive integer"}
	}
	if amount > MaxStockAdjustment {
		return nil, &ValidationError{Field: "amount", Message: fmt.Sprintf("must be at most %d", MaxStockAdjustment)}
	}
	res := r.db.WithContext(ctx).
		Model(&Stock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return nil, translateError(res.Error, ErrStockNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, ErrStockNotFound
	}
	return r.GetByProduct(ctx, productID)
}

// Decrement atomically removes amount from the product's stock. It fails with
// ErrInsufficientStock instead of letting the quantity drop below zero.
func (r *StockRepository) Decrement(ctx context.Context, productID uint, amount int) (*Stock, error) {
	if err := decrementStock(r.db.WithContext(ctx), productID, amount); err != nil {
		return nil, err
	}
	return r.GetByProduct(ctx, productID)
}

func (r *StockRepository) DeleteStock(ctx context.Context, productID uint) error {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&Stock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNotFound
	}
	return nil
}

// decrementStock is a single conditional UPDATE, so concurrent callers can
// never take the same unit twice.
func decrementStock(tx *gorm.DB, productID uint, amount int) error {
	if amount < 1 {
		return &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	res := tx.Model(&Stock{}).
		Where("product_id = ? AND quantity >= ?", productID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return translateError(res.Error, ErrStockNotFound)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&Stock{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrStockNotFound
	}
	return ErrInsufficientStock
}
