package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updateRecord writes every column of model except the primary key, the
// creation time, associations and any extra omitted columns.
// model must carry its primary key.
func updateRecord(tx *gorm.DB, model any, notFound error, omit ...string) error {
	columns := append([]string{clause.Associations}, immutableColumns...)
	columns = append(columns, omit...)

	res := tx.Model(model).Select("*").Omit(columns...).Updates(model)
	if res.Error != nil {
		return translateError(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// deleteRecord removes the row of model's type with the given id.
func deleteRecord(tx *gorm.DB, model any, id uint, notFound error) error {
	res := tx.Delete(model, id)
	if res.Error != nil {
		return translateError(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// normalize clamps the page to valid bounds.
func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	switch {
	case p.Limit == 0:
		p.Limit = DefaultLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}
