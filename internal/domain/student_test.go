package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizePRN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"prn2024001", "PRN2024001"},
		{"  Prn2024001  ", "PRN2024001"},
		{"PRN2024001", "PRN2024001"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePRN(tt.in); got != tt.want {
			t.Errorf("NormalizePRN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStudentRecord_TotalCharged(t *testing.T) {
	t.Parallel()

	s := &StudentRecord{
		Entries: []LedgerEntry{
			{Amount: decimal.NewFromInt(50)},
			{Amount: decimal.NewFromInt(30)},
		},
	}

	if got := s.TotalCharged(); !got.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected 80, got %s", got)
	}

	empty := &StudentRecord{}
	if got := empty.TotalCharged(); !got.IsZero() {
		t.Fatalf("expected empty ledger to total 0, got %s", got)
	}
}

func TestParseEntryKind(t *testing.T) {
	t.Parallel()

	if got := ParseEntryKind("FEE"); got != EntryKindFee {
		t.Errorf("expected fee, got %s", got)
	}

	if got := ParseEntryKind("fine"); got != EntryKindFine {
		t.Errorf("expected fine, got %s", got)
	}

	// Unknown kinds fall back to fine
	if got := ParseEntryKind("penalty"); got != EntryKindFine {
		t.Errorf("expected fine fallback, got %s", got)
	}
}

func TestParseExpenseCategory(t *testing.T) {
	t.Parallel()

	got, err := ParseExpenseCategory(" Equipment ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CategoryEquipment {
		t.Fatalf("expected equipment, got %s", got)
	}

	if _, err := ParseExpenseCategory("travel"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
