package usecase

import (
	"context"
	"time"

	"github.com/iho/campusledger/internal/domain"
)

// StudentUseCase handles roster read operations and the active flag.
type StudentUseCase struct {
	studentRepo StudentRepository
}

// NewStudentUseCase creates a new StudentUseCase.
func NewStudentUseCase(studentRepo StudentRepository) *StudentUseCase {
	return &StudentUseCase{studentRepo: studentRepo}
}

// GetStudent retrieves a student by PRN, ledger entries included.
func (uc *StudentUseCase) GetStudent(ctx context.Context, prn string) (*domain.StudentRecord, error) {
	return uc.studentRepo.GetByPRN(ctx, domain.NormalizePRN(prn))
}

// ListStudentsInput represents input for listing students.
type ListStudentsInput struct {
	Limit  int
	Offset int
}

// ListStudents lists roster records with pagination.
func (uc *StudentUseCase) ListStudents(ctx context.Context, input ListStudentsInput) ([]*domain.StudentRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.studentRepo.List(ctx, limit, offset)
}

// DeactivateStudent clears the active flag. The record and its ledger are
// kept; nothing is deleted.
func (uc *StudentUseCase) DeactivateStudent(ctx context.Context, prn string) error {
	return uc.studentRepo.SetActive(ctx, domain.NormalizePRN(prn), false, time.Now().UTC())
}
