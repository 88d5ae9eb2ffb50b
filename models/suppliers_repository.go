package models

import (
	"context"

	"gorm.io/gorm"
)

type SuppliersRepository struct {
	db *gorm.DB
}

func NewSuppliersRepository(db *gorm.DB) *SuppliersRepository {
	return &SuppliersRepository{db: db}
}

func (r *SuppliersRepository) GetAllSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.WithContext(ctx).Order("id").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SuppliersRepository) GetByID(ctx context.Context, id uint) (*Supplier, error) {
	var supplier Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, translateError(err, ErrSupplierNotFound)
	}
	return &supplier, nil
}

func (r *SuppliersRepository) CreateSupplier(ctx context.Context, s *Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.ID = 0
	s.resetTimestamps()
	return translateError(r.db.WithContext(ctx).Create(s).Error, ErrSupplierNotFound)
}

// UpdateSupplier overwrites the supplier identified by s.ID and reloads it.
func (r *SuppliersRepository) UpdateSupplier(ctx context.Context, s *Supplier) error {
	if err := requireID("id", s.ID); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := updateRecord(db, s, ErrSupplierNotFound); err != nil {
		return err
	}
	return translateError(db.First(s, s.ID).Error, ErrSupplierNotFound)
}

// DeleteSupplier removes the supplier and, by cascade, its products.
func (r *SuppliersRepository) DeleteSupplier(ctx context.Context, id uint) error {
	return deleteRecord(r.db.WithContext(ctx), &Supplier{}, id, ErrSupplierNotFound)
}
