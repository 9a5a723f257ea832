package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/campusledger/internal/adapter/http/dto"
	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
	"github.com/iho/campusledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	AppendEntry(ctx context.Context, input usecase.AppendEntryInput) (*domain.LedgerEntry, error)
	MarkEntryPaid(ctx context.Context, prn, receiptNo string) error
}

// LedgerHandler handles per-student ledger entry endpoints.
type LedgerHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler. metrics may be nil.
func NewLedgerHandler(ledgerUC LedgerService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// AppendEntry charges a fine or fee against a student and returns the stored
// entry with its receipt number.
func (h *LedgerHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	prn := chi.URLParam(r, "prn")

	var req dto.AppendEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.AppendEntry(r.Context(), req.ToUseCaseInput(prn))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to append entry", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.EntriesAppended.WithLabelValues(string(entry.Kind)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// MarkPaid marks an existing entry as settled.
func (h *LedgerHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	prn := chi.URLParam(r, "prn")
	receiptNo := chi.URLParam(r, "receipt")

	if err := h.ledgerUC.MarkEntryPaid(r.Context(), prn, receiptNo); err != nil {
		writeError(w, mapDomainError(err), "failed to mark entry paid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "paid", "receipt_no": receiptNo})
}
