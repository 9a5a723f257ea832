package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/tabular"
)

// maxErrorDetails bounds the per-row error list carried in a BatchResult.
const maxErrorDetails = 50

// RowError describes a single failed row in a batch.
type RowError struct {
	Identifier string
	Message    string
}

// BatchResult summarizes one ingest call. It is transient and never
// persisted.
type BatchResult struct {
	TotalRecords    int
	NewStudents     int
	UpdatedStudents int
	Errors          int
	ErrorDetails    []RowError
}

func (r *BatchResult) addError(identifier, message string) {
	r.Errors++
	if len(r.ErrorDetails) < maxErrorDetails {
		r.ErrorDetails = append(r.ErrorDetails, RowError{Identifier: identifier, Message: message})
	}
}

// RosterUseCase reconciles bulk roster uploads against the persisted roster.
type RosterUseCase struct {
	studentRepo StudentRepository
	idGen       IDGenerator
	cache       SummaryCache
}

// NewRosterUseCase creates a new RosterUseCase. cache may be nil.
func NewRosterUseCase(studentRepo StudentRepository, idGen IDGenerator, cache SummaryCache) *RosterUseCase {
	return &RosterUseCase{
		studentRepo: studentRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// Ingest parses raw delimited text and reconciles every row. A structurally
// unparseable stream is batch-fatal; individual bad rows are recorded in the
// result and never abort the batch.
func (uc *RosterUseCase) Ingest(ctx context.Context, r io.Reader) (*BatchResult, error) {
	rows, err := tabular.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	return uc.ingest(ctx, rows)
}

// IngestXLSX is Ingest for spreadsheet uploads: the first sheet is flattened
// and run through the same reconciliation path.
func (uc *RosterUseCase) IngestXLSX(ctx context.Context, r io.Reader) (*BatchResult, error) {
	rows, err := tabular.NewXLSXReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	return uc.ingest(ctx, rows)
}

func (uc *RosterUseCase) ingest(ctx context.Context, rows *tabular.Reader) (*BatchResult, error) {
	result := &BatchResult{}

	// Rows are applied strictly sequentially: duplicate PRNs within one batch
	// resolve deterministically, last row wins.
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
		}

		result.TotalRecords++
		uc.reconcile(ctx, tabular.ResolveStudent(row), result)
	}

	if uc.cache != nil && result.NewStudents > 0 {
		_ = uc.cache.Delete(ctx, SummaryCacheKey)
	}

	return result, nil
}

// reconcile applies one resolved row: create a new record, or merge into the
// existing one keyed by PRN without ever touching its ledger entries.
func (uc *RosterUseCase) reconcile(ctx context.Context, row tabular.StudentRow, result *BatchResult) {
	if row.PRN == "" {
		result.addError("Unknown", domain.ErrMissingIdentifier.Error())
		return
	}
	if row.Name == "" {
		result.addError(row.PRN, domain.ErrMissingName.Error())
		return
	}

	now := time.Now().UTC()

	existing, err := uc.studentRepo.GetByPRN(ctx, row.PRN)
	switch {
	case err == nil:
		mergeRow(existing, row)
		existing.UpdatedAt = now

		if err := uc.studentRepo.Update(ctx, existing); err != nil {
			result.addError(row.PRN, err.Error())
			return
		}
		result.UpdatedStudents++

	case errors.Is(err, domain.ErrStudentNotFound):
		student := &domain.StudentRecord{
			ID:           uc.idGen.Generate(),
			PRN:          row.PRN,
			Name:         row.Name,
			AcademicYear: row.AcademicYear,
			Semester:     row.Semester,
			CohortYear:   row.CohortYear,
			Division:     row.Division,
			RollNumber:   row.RollNumber,
			Phone:        row.Phone,
			Email:        row.Email,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := uc.studentRepo.Create(ctx, student); err != nil {
			result.addError(row.PRN, err.Error())
			return
		}
		result.NewStudents++

	default:
		result.addError(row.PRN, err.Error())
	}
}

// mergeRow overwrites the name unconditionally and each optional field only
// when the incoming value is present, so an absent column never erases data.
// The Entries slice is deliberately left alone.
func mergeRow(student *domain.StudentRecord, row tabular.StudentRow) {
	student.Name = row.Name

	if row.AcademicYear != "" {
		student.AcademicYear = row.AcademicYear
	}
	if row.Semester != "" {
		student.Semester = row.Semester
	}
	if row.CohortYear != "" {
		student.CohortYear = row.CohortYear
	}
	if row.Division != "" {
		student.Division = row.Division
	}
	if row.RollNumber != "" {
		student.RollNumber = row.RollNumber
	}
	if row.Phone != "" {
		student.Phone = row.Phone
	}
	if row.Email != "" {
		student.Email = row.Email
	}
}
