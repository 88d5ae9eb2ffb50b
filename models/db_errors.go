package models

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE codes translated into the package errors.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeNumericOutOfRange   = "22003"
)

const uniqueOrderProduct = "unique_order_product"

type driverError struct {
	code       string
	constraint string
	column     string
}

// pgError extracts the SQLSTATE details from either supported driver.
func pgError(err error) (driverError, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return driverError{pgxErr.Code, pgxErr.ConstraintName, pgxErr.ColumnName}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return driverError{string(pqErr.Code), pqErr.Constraint, pqErr.Column}, true
	}
	return driverError{}, false
}

// translateError maps driver and gorm errors onto the package error taxonomy.
// notFound is returned for gorm.ErrRecordNotFound.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	dErr, ok := pgError(err)
	if !ok {
		return err
	}
	switch dErr.code {
	case codeUniqueViolation:
		if dErr.constraint == uniqueOrderProduct {
			return ErrDuplicateOrderItem
		}
		return ErrDuplicate
	case codeForeignKeyViolation:
		return ErrReferenceNotFound
	case codeCheckViolation:
		return &ValidationError{Field: dErr.constraint, Message: "violates check constraint"}
	case codeNotNullViolation:
		return &ValidationError{Field: dErr.column, Message: "is required"}
	case codeNumericOutOfRange:
		field := dErr.column
		if field == "" {
			field = "value"
		}
		return &ValidationError{Field: field, Message: "is out of range"}
	}
	return err
}
