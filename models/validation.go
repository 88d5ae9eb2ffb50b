package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// maxPriceIntegerPart is the smallest value that no longer fits decimal(10,2).
var maxPriceIntegerPart = decimal.New(1, PriceDigits-PriceFractionalDigits)

func requireText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return checkLength(field, value, limit)
}

func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters, got %d", limit, n),
		}
	}
	return nil
}

func checkOptionalLength(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, limit)
}

func requireID(field string, id uint) error {
	if id == 0 {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// CheckPrice verifies that d fits a decimal(10,2) column without rounding.
func CheckPrice(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(PriceFractionalDigits)) {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must have at most %d decimal places", PriceFractionalDigits),
		}
	}
	if d.Abs().Truncate(0).GreaterThanOrEqual(maxPriceIntegerPart) {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must have at most %d digits in total", PriceDigits),
		}
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
