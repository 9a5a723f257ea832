package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	Kind      string          `json:"kind"`
	Category  string          `json:"category"`
	ReceiptNo string          `json:"receipt_no"`
	Date      time.Time       `json:"date"`
	IsPaid    bool            `json:"is_paid"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		Reason:    e.Reason,
		Kind:      string(e.Kind),
		Category:  e.Category,
		ReceiptNo: e.ReceiptNo,
		Date:      e.Date,
		IsPaid:    e.IsPaid,
		PaidDate:  e.PaidDate,
		CreatedAt: e.CreatedAt,
	}
}

// StudentResponse represents a student record in API responses.
type StudentResponse struct {
	PRN          string                 `json:"prn"`
	Name         string                 `json:"name"`
	AcademicYear string                 `json:"academic_year,omitempty"`
	Semester     string                 `json:"semester,omitempty"`
	CohortYear   string                 `json:"cohort_year,omitempty"`
	Division     string                 `json:"division,omitempty"`
	RollNumber   string                 `json:"roll_number,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	Email        string                 `json:"email,omitempty"`
	Entries      []*LedgerEntryResponse `json:"entries"`
	TotalCharged decimal.Decimal        `json:"total_charged"`
	Active       bool                   `json:"active"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// StudentFromDomain converts a domain student record to a response.
func StudentFromDomain(s *domain.StudentRecord) *StudentResponse {
	entries := make([]*LedgerEntryResponse, len(s.Entries))
	for i := range s.Entries {
		entries[i] = EntryFromDomain(&s.Entries[i])
	}

	return &StudentResponse{
		PRN:          s.PRN,
		Name:         s.Name,
		AcademicYear: s.AcademicYear,
		Semester:     s.Semester,
		CohortYear:   s.CohortYear,
		Division:     s.Division,
		RollNumber:   s.RollNumber,
		Phone:        s.Phone,
		Email:        s.Email,
		Entries:      entries,
		TotalCharged: s.TotalCharged(),
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// StudentsFromDomain converts domain student records to responses.
func StudentsFromDomain(students []*domain.StudentRecord) []*StudentResponse {
	result := make([]*StudentResponse, len(students))
	for i, s := range students {
		result[i] = StudentFromDomain(s)
	}
	return result
}

// ListStudentsResponse wraps a student listing.
type ListStudentsResponse struct {
	Students []*StudentResponse `json:"students"`
	Total    int64              `json:"total"`
}

// ExpenditureResponse represents an expenditure in API responses.
type ExpenditureResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Department  string          `json:"department,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by,omitempty"`
	ReceiptNo   string          `json:"receipt_no,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenditureFromDomain converts a domain expenditure to a response.
func ExpenditureFromDomain(e *domain.ExpenditureRecord) *ExpenditureResponse {
	return &ExpenditureResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    string(e.Category),
		Department:  e.Department,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		ReceiptNo:   e.ReceiptNo,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpendituresFromDomain converts domain expenditures to responses.
func ExpendituresFromDomain(expenditures []*domain.ExpenditureRecord) []*ExpenditureResponse {
	result := make([]*ExpenditureResponse, len(expenditures))
	for i, e := range expenditures {
		result[i] = ExpenditureFromDomain(e)
	}
	return result
}

// RowErrorResponse describes one failed row of a batch upload.
type RowErrorResponse struct {
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}

// BatchResultResponse summarizes a roster upload.
type BatchResultResponse struct {
	TotalRecords    int                `json:"total_records"`
	NewStudents     int                `json:"new_students"`
	UpdatedStudents int                `json:"updated_students"`
	Errors          int                `json:"errors"`
	ErrorDetails    []RowErrorResponse `json:"error_details,omitempty"`
}

// BatchResultFromUseCase converts a batch result to a response.
func BatchResultFromUseCase(r *usecase.BatchResult) *BatchResultResponse {
	details := make([]RowErrorResponse, len(r.ErrorDetails))
	for i, d := range r.ErrorDetails {
		details[i] = RowErrorResponse{Identifier: d.Identifier, Message: d.Message}
	}

	return &BatchResultResponse{
		TotalRecords:    r.TotalRecords,
		NewStudents:     r.NewStudents,
		UpdatedStudents: r.UpdatedStudents,
		Errors:          r.Errors,
		ErrorDetails:    details,
	}
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
