package domain

import "errors"

var (
	// Student errors
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicatePRN    = errors.New("student with this PRN already exists")

	// Ledger entry errors
	ErrEntryNotFound = errors.New("ledger entry not found")
	ErrInvalidAmount = errors.New("amount must be positive")

	// Expenditure errors
	ErrExpenditureNotFound = errors.New("expenditure not found")
	ErrInvalidCategory     = errors.New("unknown expense category")

	// Roster ingestion errors
	ErrMissingIdentifier = errors.New("row has no PRN")
	ErrMissingName       = errors.New("row has no student name")
	ErrMalformedInput    = errors.New("input is not parseable as tabular data")
)
