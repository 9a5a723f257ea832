package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

// MockStudentRepository is a mock implementation of StudentRepository backed
// by an in-memory roster. Any *Func field overrides the default behavior.
type MockStudentRepository struct {
	mu       sync.RWMutex
	students map[string]*domain.StudentRecord
	order    []string

	CreateFunc        func(ctx context.Context, student *domain.StudentRecord) error
	GetByPRNFunc      func(ctx context.Context, prn string) (*domain.StudentRecord, error)
	UpdateFunc        func(ctx context.Context, student *domain.StudentRecord) error
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.StudentRecord, error)
	ListAllFunc       func(ctx context.Context) ([]*domain.StudentRecord, error)
	SetActiveFunc     func(ctx context.Context, prn string, active bool, updatedAt time.Time) error
	AppendEntryFunc   func(ctx context.Context, prn string, entry *domain.LedgerEntry) error
	MarkEntryPaidFunc func(ctx context.Context, prn, receiptNo string, paidAt time.Time) error
}

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{
		students: make(map[string]*domain.StudentRecord),
	}
}

func (m *MockStudentRepository) Create(ctx context.Context, student *domain.StudentRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, student)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[student.PRN]; ok {
		return domain.ErrDuplicatePRN
	}
	m.students[student.PRN] = student
	m.order = append(m.order, student.PRN)
	return nil
}

func (m *MockStudentRepository) GetByPRN(ctx context.Context, prn string) (*domain.StudentRecord, error) {
	if m.GetByPRNFunc != nil {
		return m.GetByPRNFunc(ctx, prn)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.students[prn]; ok {
		return s, nil
	}
	return nil, domain.ErrStudentNotFound
}

func (m *MockStudentRepository) Update(ctx context.Context, student *domain.StudentRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, student)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[student.PRN]; !ok {
		return domain.ErrStudentNotFound
	}
	m.students[student.PRN] = student
	return nil
}

func (m *MockStudentRepository) List(ctx context.Context, limit, offset int) ([]*domain.StudentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.StudentRecord
	for i := offset; i < len(m.order) && len(out) < limit; i++ {
		out = append(out, m.students[m.order[i]])
	}
	return out, nil
}

func (m *MockStudentRepository) ListAll(ctx context.Context) ([]*domain.StudentRecord, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.StudentRecord, 0, len(m.order))
	for _, prn := range m.order {
		out = append(out, m.students[prn])
	}
	return out, nil
}

func (m *MockStudentRepository) SetActive(ctx context.Context, prn string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, prn, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[prn]
	if !ok {
		return domain.ErrStudentNotFound
	}
	s.Active = active
	s.UpdatedAt = updatedAt
	return nil
}

func (m *MockStudentRepository) AppendEntry(ctx context.Context, prn string, entry *domain.LedgerEntry) error {
	if m.AppendEntryFunc != nil {
		return m.AppendEntryFunc(ctx, prn, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[prn]
	if !ok {
		return domain.ErrStudentNotFound
	}
	s.Entries = append(s.Entries, *entry)
	return nil
}

func (m *MockStudentRepository) MarkEntryPaid(ctx context.Context, prn, receiptNo string, paidAt time.Time) error {
	if m.MarkEntryPaidFunc != nil {
		return m.MarkEntryPaidFunc(ctx, prn, receiptNo, paidAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[prn]
	if !ok {
		return domain.ErrStudentNotFound
	}
	for i := range s.Entries {
		if s.Entries[i].ReceiptNo == receiptNo {
			s.Entries[i].IsPaid = true
			s.Entries[i].PaidDate = &paidAt
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// MockExpenditureRepository is a mock implementation of
// ExpenditureRepository backed by an in-memory store.
type MockExpenditureRepository struct {
	mu           sync.RWMutex
	expenditures map[string]*domain.ExpenditureRecord
	order        []string

	CreateFunc  func(ctx context.Context, exp *domain.ExpenditureRecord) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.ExpenditureRecord, error)
	UpdateFunc  func(ctx context.Context, exp *domain.ExpenditureRecord) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, filter usecase.ExpenditureFilter) ([]*domain.ExpenditureRecord, error)
	ListAllFunc func(ctx context.Context) ([]*domain.ExpenditureRecord, error)
}

func NewMockExpenditureRepository() *MockExpenditureRepository {
	return &MockExpenditureRepository{
		expenditures: make(map[string]*domain.ExpenditureRecord),
	}
}

func (m *MockExpenditureRepository) Create(ctx context.Context, exp *domain.ExpenditureRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, exp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenditures[exp.ID] = exp
	m.order = append(m.order, exp.ID)
	return nil
}

func (m *MockExpenditureRepository) GetByID(ctx context.Context, id string) (*domain.ExpenditureRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenditures[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenditureNotFound
}

func (m *MockExpenditureRepository) Update(ctx context.Context, exp *domain.ExpenditureRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, exp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenditures[exp.ID]; !ok {
		return domain.ErrExpenditureNotFound
	}
	m.expenditures[exp.ID] = exp
	return nil
}

func (m *MockExpenditureRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenditures[id]; !ok {
		return domain.ErrExpenditureNotFound
	}
	delete(m.expenditures, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockExpenditureRepository) List(ctx context.Context, filter usecase.ExpenditureFilter) ([]*domain.ExpenditureRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ExpenditureRecord
	for _, id := range m.order {
		e := m.expenditures[id]
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *MockExpenditureRepository) ListAll(ctx context.Context) ([]*domain.ExpenditureRecord, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.ExpenditureRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.expenditures[id])
	}
	return out, nil
}

// MockSummaryCache is an in-memory SummaryCache.
type MockSummaryCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockSummaryCache() *MockSummaryCache {
	return &MockSummaryCache{items: make(map[string][]byte)}
}

func (m *MockSummaryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[key], nil
}

func (m *MockSummaryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockSummaryCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockIDGenerator returns sequential IDs unless overridden.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}
