package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/campusledger/internal/usecase"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	GetFinancialSummary(ctx context.Context) (*usecase.FinancialSummary, error)
	GetMonthlyReport(ctx context.Context, year int) (*usecase.MonthlyReport, error)
}

// SummaryHandler serves institution-wide financial aggregates.
type SummaryHandler struct {
	summaryUC SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// GetSummary returns collections, expenditures and the running balance.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryUC.GetFinancialSummary(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetMonthlyReport returns the per-month breakdown for a calendar year.
// The year defaults to the current one.
func (h *SummaryHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", 0)
	if year < 0 || (year != 0 && (year < 2000 || year > time.Now().UTC().Year()+1)) {
		writeError(w, http.StatusBadRequest, "invalid year", "year must be a recent calendar year")
		return
	}

	report, err := h.summaryUC.GetMonthlyReport(r.Context(), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build monthly report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
