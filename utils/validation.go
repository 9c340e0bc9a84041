package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if an amount is non-negative
func ValidateNonNegative(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ParseDate parses a required YYYY-MM-DD date
func ParseDate(value, fieldName string) (time.Time, error) {
	if err := ValidateRequired(value, fieldName); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fieldName))
	}
	return t, nil
}

// ParseOptionalDate parses a YYYY-MM-DD date, returning nil for an empty value
func ParseOptionalDate(value, fieldName string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
