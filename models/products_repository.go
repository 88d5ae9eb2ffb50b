package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategoryID    *uint
	SupplierID    *uint
	PriceLessThan *decimal.Decimal
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, page Page, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	page = page.normalize()
	db := r.db.WithContext(ctx)

	// Count total after filtering
	if err := filters.apply(db.Model(&Product{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := filters.apply(db).
		Preload("Category").
		Preload("Supplier").
		Order("name").Order("id").
		Offset(page.Offset).Limit(page.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (f ProductFilters) apply(query *gorm.DB) *gorm.DB {
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.SupplierID != nil {
		query = query.Where("supplier_id = ?", *f.SupplierID)
	}
	if f.PriceLessThan != nil {
		query = query.Where("price_per_unit < ?", *f.PriceLessThan)
	}
	return query
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&product, id).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}
	return &product, nil
}

// CreateProduct inserts p together with its empty stock record.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.ID = 0
	p.resetTimestamps()
	db := r.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Supplier", "Category").Create(p).Error; err != nil {
			return translateError(err, ErrProductNotFound)
		}
		return translateError(tx.Omit("Product").Create(NewStock(p.ID)).Error, ErrStockNotFound)
	})
	if err != nil {
		return err
	}
	return r.preload(db, p)
}

// UpdateProduct overwrites the product identified by p.ID. The creation time
// is kept and the modification time refreshed.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, p *Product) error {
	if err := requireID("id", p.ID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := updateRecord(db, p, ErrProductNotFound); err != nil {
		return err
	}
	return r.preload(db, p)
}

// DeleteProduct removes the product together with its stock and order lines.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	return deleteRecord(r.db.WithContext(ctx), &Product{}, id, ErrProductNotFound)
}

func (r *ProductsRepository) preload(db *gorm.DB, p *Product) error {
	return translateError(
		db.Preload("Category").Preload("Supplier").First(p, p.ID).Error,
		ErrProductNotFound,
	)
}
