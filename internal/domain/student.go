package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes the two kinds of charges recorded against a student.
type EntryKind string

const (
	EntryKindFine EntryKind = "fine"
	EntryKindFee  EntryKind = "fee"
)

// DefaultEntryCategory is used when an appended entry carries no category.
const DefaultEntryCategory = "General"

// LedgerEntry is a single monetary charge (fine or fee) recorded against a
// student. Amount and ReceiptNo are immutable once the entry is appended;
// IsPaid and PaidDate are the only fields mutated afterwards.
type LedgerEntry struct {
	ID        string
	Amount    decimal.Decimal
	Reason    string
	Kind      EntryKind
	Category  string
	ReceiptNo string
	Date      time.Time
	IsPaid    bool
	PaidDate  *time.Time
	CreatedAt time.Time
}

// StudentRecord is a roster entry keyed by PRN. The Entries slice is ordered
// by creation time and is only ever appended to; reconciliation never replaces
// it.
type StudentRecord struct {
	ID           string
	PRN          string
	Name         string
	AcademicYear string
	Semester     string
	CohortYear   string
	Division     string
	RollNumber   string
	Phone        string
	Email        string
	Entries      []LedgerEntry
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizePRN canonicalizes a student identifier: surrounding whitespace
// stripped, letters upper-cased.
func NormalizePRN(prn string) string {
	return strings.ToUpper(strings.TrimSpace(prn))
}

// TotalCharged sums all entry amounts on the record.
func (s *StudentRecord) TotalCharged() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// ParseEntryKind maps a loose string to an EntryKind, defaulting to fine.
func ParseEntryKind(s string) EntryKind {
	if strings.EqualFold(strings.TrimSpace(s), string(EntryKindFee)) {
		return EntryKindFee
	}
	return EntryKindFine
}
