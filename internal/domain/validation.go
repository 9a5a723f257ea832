package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName    = errors.New("invalid student name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrInvalidPRN     = errors.New("invalid PRN format")
)

// Validation constants
const (
	MaxNameLength   = 255
	MaxReasonLength = 1024
	MaxAmount       = "100000000" // 100 million, well past any realistic fine
	MaxPRNLength    = 64
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount validates a monetary amount for entries and expenditures.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateName validates a student display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidatePRN validates a normalized student identifier.
func ValidatePRN(prn string) error {
	if prn == "" {
		return fmt.Errorf("%w: PRN cannot be empty", ErrInvalidPRN)
	}

	if len(prn) > MaxPRNLength {
		return fmt.Errorf("%w: PRN exceeds %d characters", ErrInvalidPRN, MaxPRNLength)
	}

	return nil
}

// ValidateEmail validates email format. Empty email is allowed, the field is
// optional on a roster row.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
