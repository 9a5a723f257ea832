package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/iho/campusledger/internal/adapter/http/dto"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
	"github.com/iho/campusledger/internal/usecase"
)

// maxUploadSize caps roster uploads at 16MB.
const maxUploadSize = 16 << 20

// RosterService defines the behavior needed by UploadHandler.
type RosterService interface {
	Ingest(ctx context.Context, r io.Reader) (*usecase.BatchResult, error)
	IngestXLSX(ctx context.Context, r io.Reader) (*usecase.BatchResult, error)
}

// UploadHandler handles bulk roster uploads.
type UploadHandler struct {
	rosterUC RosterService
	metrics  *metrics.Metrics
}

// NewUploadHandler creates a new UploadHandler. metrics may be nil.
func NewUploadHandler(rosterUC RosterService, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{rosterUC: rosterUC, metrics: m}
}

// Upload accepts a multipart roster file (csv or xlsx), reconciles every row
// and reports a full batch result even when some rows failed. Partial success
// is a normal outcome, not an exceptional one.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field", err.Error())
		return
	}
	defer file.Close()

	// Stage the upload on disk so the engine gets a plain stream; the staged
	// copy is removed on every path out of this request.
	tmp, err := os.CreateTemp("", "roster-upload-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload", err.Error())
		return
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			log.Warn().Err(err).Str("file", tmp.Name()).Msg("upload cleanup failed")
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload", err.Error())
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload", err.Error())
		return
	}

	var result *usecase.BatchResult
	if strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		result, err = h.rosterUC.IngestXLSX(r.Context(), tmp)
	} else {
		result, err = h.rosterUC.Ingest(r.Context(), tmp)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to ingest roster", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.RowsIngested.Add(float64(result.TotalRecords))
		h.metrics.StudentsCreated.Add(float64(result.NewStudents))
		h.metrics.StudentsUpdated.Add(float64(result.UpdatedStudents))
		h.metrics.RowsFailed.Add(float64(result.Errors))
	}

	log.Info().
		Str("file", header.Filename).
		Int("total", result.TotalRecords).
		Int("created", result.NewStudents).
		Int("updated", result.UpdatedStudents).
		Int("errors", result.Errors).
		Msg("roster batch ingested")

	writeJSON(w, http.StatusOK, dto.BatchResultFromUseCase(result))
}
