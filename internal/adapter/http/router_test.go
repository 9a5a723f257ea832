package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/campusledger/internal/adapter/http/handler"
	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimit = 1
		cfg.RateBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_StudentLookupRoutesToHandler(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/PRN2024001", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected student lookup to return 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/students/upload",
		"GET /api/v1/students/",
		"GET /api/v1/students/{prn}",
		"DELETE /api/v1/students/{prn}",
		"POST /api/v1/students/{prn}/entries",
		"POST /api/v1/students/{prn}/entries/{receipt}/pay",
		"POST /api/v1/expenditures/",
		"GET /api/v1/expenditures/",
		"GET /api/v1/expenditures/{id}",
		"PUT /api/v1/expenditures/{id}",
		"DELETE /api/v1/expenditures/{id}",
		"GET /api/v1/summary",
		"GET /api/v1/reports/monthly",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		UploadHandler:      handler.NewUploadHandler(&stubRosterService{}, nil),
		StudentHandler:     handler.NewStudentHandler(&stubStudentService{}),
		LedgerHandler:      handler.NewLedgerHandler(&stubLedgerService{}, nil),
		ExpenditureHandler: handler.NewExpenditureHandler(&stubExpenditureService{}, nil),
		SummaryHandler:     handler.NewSummaryHandler(&stubSummaryService{}),
		HealthHandler:      &handler.HealthHandler{},
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubRosterService struct{}

func (stubRosterService) Ingest(ctx context.Context, r io.Reader) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

func (stubRosterService) IngestXLSX(ctx context.Context, r io.Reader) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

type stubStudentService struct{}

func (stubStudentService) GetStudent(ctx context.Context, prn string) (*domain.StudentRecord, error) {
	return &domain.StudentRecord{PRN: prn, Name: "Stub"}, nil
}

func (stubStudentService) ListStudents(ctx context.Context, input usecase.ListStudentsInput) ([]*domain.StudentRecord, error) {
	return []*domain.StudentRecord{}, nil
}

func (stubStudentService) DeactivateStudent(ctx context.Context, prn string) error {
	return nil
}

type stubLedgerService struct{}

func (stubLedgerService) AppendEntry(ctx context.Context, input usecase.AppendEntryInput) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{ID: "entry", Kind: domain.EntryKindFine}, nil
}

func (stubLedgerService) MarkEntryPaid(ctx context.Context, prn, receiptNo string) error {
	return nil
}

type stubExpenditureService struct{}

func (stubExpenditureService) CreateExpenditure(ctx context.Context, input usecase.CreateExpenditureInput) (*domain.ExpenditureRecord, error) {
	return &domain.ExpenditureRecord{ID: "exp"}, nil
}

func (stubExpenditureService) GetExpenditure(ctx context.Context, id string) (*domain.ExpenditureRecord, error) {
	return &domain.ExpenditureRecord{ID: id}, nil
}

func (stubExpenditureService) UpdateExpenditure(ctx context.Context, id string, input usecase.UpdateExpenditureInput) (*domain.ExpenditureRecord, error) {
	return &domain.ExpenditureRecord{ID: id}, nil
}

func (stubExpenditureService) DeleteExpenditure(ctx context.Context, id string) error {
	return nil
}

func (stubExpenditureService) ListExpenditures(ctx context.Context, filter usecase.ExpenditureFilter) ([]*domain.ExpenditureRecord, error) {
	return []*domain.ExpenditureRecord{}, nil
}

type stubSummaryService struct{}

func (stubSummaryService) GetFinancialSummary(ctx context.Context) (*usecase.FinancialSummary, error) {
	return &usecase.FinancialSummary{}, nil
}

func (stubSummaryService) GetMonthlyReport(ctx context.Context, year int) (*usecase.MonthlyReport, error) {
	return &usecase.MonthlyReport{Year: year}, nil
}
