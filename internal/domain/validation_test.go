package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	valid := decimal.NewFromFloat(100.25)
	if err := ValidateAmount(valid); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-50)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	huge, _ := decimal.NewFromString("200000000")
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	if err := ValidateName("Asha Kulkarni"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidateName("   "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	tooLong := strings.Repeat("a", MaxNameLength+1)
	if err := ValidateName(tooLong); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestValidatePRN(t *testing.T) {
	t.Parallel()

	if err := ValidatePRN("PRN2024001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidatePRN(""); !errors.Is(err, ErrInvalidPRN) {
		t.Fatalf("expected ErrInvalidPRN, got %v", err)
	}

	if err := ValidatePRN(strings.Repeat("X", MaxPRNLength+1)); !errors.Is(err, ErrInvalidPRN) {
		t.Fatalf("expected ErrInvalidPRN, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("student@college.edu"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}

	// Optional field: empty is fine
	if err := ValidateEmail(""); err != nil {
		t.Fatalf("expected empty email to pass, got %v", err)
	}

	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected limit capped at 1000, got %d", limit)
	}
}
