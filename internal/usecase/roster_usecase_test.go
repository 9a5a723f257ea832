package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
	"github.com/iho/campusledger/internal/usecase/mocks"
)

func seedStudent(t *testing.T, repo *mocks.MockStudentRepository, s *domain.StudentRecord) {
	t.Helper()
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seeding student: %v", err)
	}
}

func TestRosterUseCase_Ingest_EndToEnd(t *testing.T) {
	repo := mocks.NewMockStudentRepository()

	paid := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seedStudent(t, repo, &domain.StudentRecord{
		ID:       "id-existing",
		PRN:      "PRN002",
		Name:     "Rohan Patil",
		Division: "Mechanical",
		Entries: []domain.LedgerEntry{
			{ReceiptNo: "RCP-20250110-00001", Amount: decimal.NewFromInt(100), Kind: domain.EntryKindFine, IsPaid: true, PaidDate: &paid},
			{ReceiptNo: "RCP-20250110-00002", Amount: decimal.NewFromInt(250), Kind: domain.EntryKindFee},
		},
		Active: true,
	})

	input := strings.Join([]string{
		"PRN Number,Student Name,Division",
		"PRN001,Asha Kulkarni,Computer",
		"PRN002,Rohan Patil,Civil",
		"PRN003,,Electrical",
	}, "\n")

	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	result, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalRecords != 3 || result.NewStudents != 1 || result.UpdatedStudents != 1 || result.Errors != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.ErrorDetails) != 1 {
		t.Fatalf("expected 1 error detail, got %d", len(result.ErrorDetails))
	}
	if result.ErrorDetails[0].Identifier != "PRN003" {
		t.Errorf("expected failed row identified as PRN003, got %q", result.ErrorDetails[0].Identifier)
	}

	// Row 2 updated the division without touching the ledger.
	updated, err := repo.GetByPRN(context.Background(), "PRN002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Division != "Civil" {
		t.Errorf("expected division updated to Civil, got %q", updated.Division)
	}
	if len(updated.Entries) != 2 {
		t.Fatalf("ledger must be untouched, got %d entries", len(updated.Entries))
	}
	if updated.Entries[0].ReceiptNo != "RCP-20250110-00001" || updated.Entries[1].ReceiptNo != "RCP-20250110-00002" {
		t.Error("ledger entry order changed during reconciliation")
	}
	if !updated.Entries[1].Amount.Equal(decimal.NewFromInt(250)) {
		t.Error("ledger entry amount changed during reconciliation")
	}
}

func TestRosterUseCase_Ingest_PartialBatchTolerance(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	// 5 rows, 2 invalid: one missing PRN, one missing name.
	input := strings.Join([]string{
		"PRN,Name,Division",
		"PRN001,Asha,A",
		",Ghost Row,B",
		"PRN003,Meera,C",
		"PRN004,,D",
		"PRN005,Kiran,E",
	}, "\n")

	result, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Errors != 2 {
		t.Errorf("expected 2 errors, got %d", result.Errors)
	}
	if got := result.NewStudents + result.UpdatedStudents; got != 3 {
		t.Errorf("expected 3 applied rows, got %d", got)
	}

	// The valid rows are fully applied.
	for _, prn := range []string{"PRN001", "PRN003", "PRN005"} {
		if _, err := repo.GetByPRN(context.Background(), prn); err != nil {
			t.Errorf("expected %s persisted: %v", prn, err)
		}
	}

	// A row with no PRN is reported under the best-effort identifier.
	if result.ErrorDetails[0].Identifier != "Unknown" {
		t.Errorf("expected Unknown identifier, got %q", result.ErrorDetails[0].Identifier)
	}
}

func TestRosterUseCase_Ingest_AbsentFieldsNeverErase(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	seedStudent(t, repo, &domain.StudentRecord{
		ID:     "id-1",
		PRN:    "PRN001",
		Name:   "Asha Kulkarni",
		Phone:  "9822012345",
		Email:  "asha@college.edu",
		Active: true,
	})

	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	// The upload has no contact columns at all.
	input := "PRN,Name,Division\nPRN001,Asha A. Kulkarni,Computer\n"

	if _, err := uc.Ingest(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, _ := repo.GetByPRN(context.Background(), "PRN001")
	if s.Name != "Asha A. Kulkarni" {
		t.Errorf("name must be overwritten unconditionally, got %q", s.Name)
	}
	if s.Phone != "9822012345" || s.Email != "asha@college.edu" {
		t.Errorf("absent fields erased existing data: phone=%q email=%q", s.Phone, s.Email)
	}
	if s.Division != "Computer" {
		t.Errorf("present field not applied, got %q", s.Division)
	}
}

func TestRosterUseCase_Ingest_DuplicateRowsLastWins(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	input := strings.Join([]string{
		"PRN,Name,Division",
		"PRN001,Asha,A",
		"PRN001,Asha,B",
	}, "\n")

	result, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.NewStudents != 1 || result.UpdatedStudents != 1 {
		t.Fatalf("expected create then update for duplicate PRN, got %+v", result)
	}

	s, _ := repo.GetByPRN(context.Background(), "PRN001")
	if s.Division != "B" {
		t.Errorf("expected last row to win, got division %q", s.Division)
	}
}

func TestRosterUseCase_Ingest_Idempotent(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	input := "PRN,Name\nPRN001,Asha\nPRN002,Rohan\n"

	first, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.NewStudents != 2 {
		t.Fatalf("expected 2 new students, got %+v", first)
	}

	second, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.NewStudents != 0 || second.UpdatedStudents != 2 {
		t.Fatalf("re-running an unchanged batch must update, not duplicate: %+v", second)
	}
}

func TestRosterUseCase_Ingest_MalformedInputIsFatal(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	input := "PRN,Name\nPRN001,Asha\nPRN002,Rohan,extra,columns\n"

	_, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestRosterUseCase_Ingest_PersistenceFailureIsRowRecoverable(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	boom := errors.New("connection reset")
	repo.CreateFunc = func(ctx context.Context, student *domain.StudentRecord) error {
		if student.PRN == "PRN002" {
			return boom
		}
		return nil
	}

	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), nil)

	input := "PRN,Name\nPRN001,Asha\nPRN002,Rohan\nPRN003,Meera\n"

	result, err := uc.Ingest(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("a single row's persistence failure must not abort the batch: %v", err)
	}

	if result.NewStudents != 2 || result.Errors != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.ErrorDetails[0].Identifier != "PRN002" {
		t.Errorf("expected PRN002 recorded, got %q", result.ErrorDetails[0].Identifier)
	}
}

func TestRosterUseCase_Ingest_InvalidatesSummaryCache(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	cache := mocks.NewMockSummaryCache()
	_ = cache.Set(context.Background(), usecase.SummaryCacheKey, []byte(`{}`), time.Minute)

	uc := usecase.NewRosterUseCase(repo, mocks.NewMockIDGenerator(), cache)

	input := "PRN,Name\nPRN001,Asha\n"
	if _, err := uc.Ingest(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := cache.Get(context.Background(), usecase.SummaryCacheKey)
	if len(raw) != 0 {
		t.Error("summary cache must be invalidated when the roster grows")
	}
}
