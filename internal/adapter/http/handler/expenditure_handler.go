package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/campusledger/internal/adapter/http/dto"
	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
	"github.com/iho/campusledger/internal/usecase"
)

// ExpenditureService defines the behavior needed by ExpenditureHandler.
type ExpenditureService interface {
	CreateExpenditure(ctx context.Context, input usecase.CreateExpenditureInput) (*domain.ExpenditureRecord, error)
	GetExpenditure(ctx context.Context, id string) (*domain.ExpenditureRecord, error)
	UpdateExpenditure(ctx context.Context, id string, input usecase.UpdateExpenditureInput) (*domain.ExpenditureRecord, error)
	DeleteExpenditure(ctx context.Context, id string) error
	ListExpenditures(ctx context.Context, filter usecase.ExpenditureFilter) ([]*domain.ExpenditureRecord, error)
}

// ExpenditureHandler handles department expenditure endpoints.
type ExpenditureHandler struct {
	expUC   ExpenditureService
	metrics *metrics.Metrics
}

// NewExpenditureHandler creates a new ExpenditureHandler. metrics may be nil.
func NewExpenditureHandler(expUC ExpenditureService, m *metrics.Metrics) *ExpenditureHandler {
	return &ExpenditureHandler{expUC: expUC, metrics: m}
}

// Create records a new departmental expenditure.
func (h *ExpenditureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	exp, err := h.expUC.CreateExpenditure(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expenditure", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExpendituresRecorded.WithLabelValues(string(exp.Category)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.ExpenditureFromDomain(exp))
}

// Get returns a single expenditure by ID.
func (h *ExpenditureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	exp, err := h.expUC.GetExpenditure(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get expenditure", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenditureFromDomain(exp))
}

// Update applies a partial update to an expenditure.
func (h *ExpenditureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateExpenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	exp, err := h.expUC.UpdateExpenditure(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expenditure", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenditureFromDomain(exp))
}

// Delete removes an expenditure.
func (h *ExpenditureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.expUC.DeleteExpenditure(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expenditure", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns expenditures matching the optional query filters.
func (h *ExpenditureHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ExpenditureFilter{
		Department: r.URL.Query().Get("department"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	if cat := r.URL.Query().Get("category"); cat != "" {
		category, err := domain.ParseExpenseCategory(cat)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category", err.Error())
			return
		}
		filter.Category = category
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp", err.Error())
			return
		}
		filter.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp", err.Error())
			return
		}
		filter.To = &t
	}

	expenditures, err := h.expUC.ListExpenditures(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenditures", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpendituresFromDomain(expenditures))
}
