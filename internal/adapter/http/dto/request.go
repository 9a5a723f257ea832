package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

// AppendEntryRequest represents a request to charge a fine or fee.
type AppendEntryRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Category string          `json:"category,omitempty"`
	Date     *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AppendEntryRequest) ToUseCaseInput(prn string) usecase.AppendEntryInput {
	var kind domain.EntryKind
	if r.Kind != "" {
		kind = domain.ParseEntryKind(r.Kind)
	}

	return usecase.AppendEntryInput{
		PRN:      prn,
		Amount:   r.Amount,
		Reason:   r.Reason,
		Kind:     kind,
		Category: r.Category,
		Date:     r.Date,
	}
}

// CreateExpenditureRequest represents a request to record an expenditure.
type CreateExpenditureRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Department  string          `json:"department"`
	Date        *time.Time      `json:"date,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	ReceiptNo   string          `json:"receipt_no,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenditureRequest) ToUseCaseInput() usecase.CreateExpenditureInput {
	return usecase.CreateExpenditureInput{
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Department:  r.Department,
		Date:        r.Date,
		CreatedBy:   r.CreatedBy,
		ReceiptNo:   r.ReceiptNo,
		Notes:       r.Notes,
	}
}

// UpdateExpenditureRequest represents a partial expenditure update. Omitted
// fields are left unchanged.
type UpdateExpenditureRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	ReceiptNo   *string          `json:"receipt_no,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenditureRequest) ToUseCaseInput() usecase.UpdateExpenditureInput {
	return usecase.UpdateExpenditureInput{
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Department:  r.Department,
		Date:        r.Date,
		ReceiptNo:   r.ReceiptNo,
		Notes:       r.Notes,
	}
}
