package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/campusledger/internal/adapter/http/dto"
	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

// StudentService defines the behavior needed by StudentHandler.
type StudentService interface {
	GetStudent(ctx context.Context, prn string) (*domain.StudentRecord, error)
	ListStudents(ctx context.Context, input usecase.ListStudentsInput) ([]*domain.StudentRecord, error)
	DeactivateStudent(ctx context.Context, prn string) error
}

// StudentHandler handles student roster HTTP requests.
type StudentHandler struct {
	studentUC StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentUC StudentService) *StudentHandler {
	return &StudentHandler{studentUC: studentUC}
}

// Get retrieves a student by PRN.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	prn := chi.URLParam(r, "prn")
	if prn == "" {
		writeError(w, http.StatusBadRequest, "missing PRN", "")
		return
	}

	student, err := h.studentUC.GetStudent(r.Context(), prn)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get student", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StudentFromDomain(student))
}

// List lists roster records.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	students, err := h.studentUC.ListStudents(r.Context(), usecase.ListStudentsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list students", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListStudentsResponse{
		Students: dto.StudentsFromDomain(students),
		Total:    int64(len(students)),
	})
}

// Deactivate clears a student's active flag.
func (h *StudentHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	prn := chi.URLParam(r, "prn")
	if prn == "" {
		writeError(w, http.StatusBadRequest, "missing PRN", "")
		return
	}

	if err := h.studentUC.DeactivateStudent(r.Context(), prn); err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate student", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
