package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type CustomersRepository struct {
	db *gorm.DB
}

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{db: db}
}

func (r *CustomersRepository) GetAllCustomers(ctx context.Context, page Page) ([]Customer, int64, error) {
	var customers []Customer
	var total int64

	page = page.normalize()
	db := r.db.WithContext(ctx)
	if err := db.Model(&Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("id").Offset(page.Offset).Limit(page.Limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomersRepository) GetByID(ctx context.Context, id uint) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, translateError(err, ErrCustomerNotFound)
	}
	return &customer, nil
}

func (r *CustomersRepository) GetByUsername(ctx context.Context, username string) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&customer).Error; err != nil {
		return nil, translateError(err, ErrCustomerNotFound)
	}
	return &customer, nil
}

// CreateCustomer inserts c. The password must already be set with SetPassword.
// A taken username fails with ErrDuplicate.
func (r *CustomersRepository) CreateCustomer(ctx context.Context, c *Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.ID = 0
	c.DateJoined = time.Time{}
	return translateError(r.db.WithContext(ctx).Create(c).Error, ErrCustomerNotFound)
}

// UpdateCustomer overwrites the customer identified by c.ID. The join date is
// never changed.
func (r *CustomersRepository) UpdateCustomer(ctx context.Context, c *Customer) error {
	if err := requireID("id", c.ID); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := updateRecord(db, c, ErrCustomerNotFound, "date_joined"); err != nil {
		return err
	}
	return translateError(db.First(c, c.ID).Error, ErrCustomerNotFound)
}

// DeleteCustomer removes the customer and, by cascade, all their orders.
func (r *CustomersRepository) DeleteCustomer(ctx context.Context, id uint) error {
	return deleteRecord(r.db.WithContext(ctx), &Customer{}, id, ErrCustomerNotFound)
}
