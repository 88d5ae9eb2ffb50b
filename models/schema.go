package models

import "gorm.io/gorm"

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&Supplier{},
		&Category{},
		&Product{},
		&Stock{},
		&Customer{},
		&Order{},
		&OrderItem{},
	}
}

// Migrate creates or updates the tables, indexes and constraints of all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
