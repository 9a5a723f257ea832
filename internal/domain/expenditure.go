package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the fixed set of expenditure buckets.
type ExpenseCategory string

const (
	CategoryInfrastructure ExpenseCategory = "infrastructure"
	CategoryEquipment      ExpenseCategory = "equipment"
	CategoryStationery     ExpenseCategory = "stationery"
	CategoryEvents         ExpenseCategory = "events"
	CategoryMaintenance    ExpenseCategory = "maintenance"
	CategoryOther          ExpenseCategory = "other"
)

var validCategories = map[ExpenseCategory]bool{
	CategoryInfrastructure: true,
	CategoryEquipment:      true,
	CategoryStationery:     true,
	CategoryEvents:         true,
	CategoryMaintenance:    true,
	CategoryOther:          true,
}

// ParseExpenseCategory validates a loose category string.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if !validCategories[c] {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ExpenditureRecord is a departmental expense. It lives independently of
// student records and is never embedded in one.
type ExpenditureRecord struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Category    ExpenseCategory
	Department  string
	Date        time.Time
	CreatedBy   string
	ReceiptNo   string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
