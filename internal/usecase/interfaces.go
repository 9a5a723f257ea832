package usecase

import (
	"context"
	"time"

	"github.com/iho/campusledger/internal/domain"
)

// StudentRepository defines data access for the student roster.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.StudentRecord) error
	GetByPRN(ctx context.Context, prn string) (*domain.StudentRecord, error)
	Update(ctx context.Context, student *domain.StudentRecord) error
	List(ctx context.Context, limit, offset int) ([]*domain.StudentRecord, error)
	ListAll(ctx context.Context) ([]*domain.StudentRecord, error)
	SetActive(ctx context.Context, prn string, active bool, updatedAt time.Time) error
	AppendEntry(ctx context.Context, prn string, entry *domain.LedgerEntry) error
	MarkEntryPaid(ctx context.Context, prn, receiptNo string, paidAt time.Time) error
}

// ExpenditureRepository defines data access for departmental expenditures.
type ExpenditureRepository interface {
	Create(ctx context.Context, exp *domain.ExpenditureRecord) error
	GetByID(ctx context.Context, id string) (*domain.ExpenditureRecord, error)
	Update(ctx context.Context, exp *domain.ExpenditureRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ExpenditureFilter) ([]*domain.ExpenditureRecord, error)
	ListAll(ctx context.Context) ([]*domain.ExpenditureRecord, error)
}

// ExpenditureFilter narrows expenditure listings.
type ExpenditureFilter struct {
	Category   domain.ExpenseCategory
	Department string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Notifier delivers receipt notifications. Delivery is best-effort: callers
// dispatch it in the background and only log failures.
type Notifier interface {
	SendReceipt(ctx context.Context, to, studentName string, entry domain.LedgerEntry) error
}

// SummaryCache caches derived financial figures. A nil cache disables
// caching; every ledger or expenditure mutation must invalidate it.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
