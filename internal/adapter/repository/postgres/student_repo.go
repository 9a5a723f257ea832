package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/campusledger/internal/domain"
)

// pgErrUniqueViolation is raised when an insert collides with the PRN
// uniqueness constraint.
const pgErrUniqueViolation = "23505"

// StudentRepository implements usecase.StudentRepository. Mutations run
// under a retrier because roster batches touching the same rows can
// deadlock under concurrent uploads.
type StudentRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool, retrier: NewRetrier()}
}

// Create inserts a new student record. Ledger entries present on the record
// are inserted alongside it.
func (r *StudentRepository) Create(ctx context.Context, student *domain.StudentRecord) error {
	return r.retrier.Retry(ctx, func() error {
		return r.create(ctx, student)
	})
}

func (r *StudentRepository) create(ctx context.Context, student *domain.StudentRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO students (
			id, prn, name, academic_year, semester, cohort_year,
			division, roll_number, phone, email, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tx.Exec(ctx, query,
		student.ID,
		student.PRN,
		student.Name,
		student.AcademicYear,
		student.Semester,
		student.CohortYear,
		student.Division,
		student.RollNumber,
		student.Phone,
		student.Email,
		student.Active,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicatePRN
		}
		return err
	}

	for i := range student.Entries {
		if err := insertEntry(ctx, tx, student.PRN, &student.Entries[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByPRN retrieves a student with their ledger entries in insertion order.
func (r *StudentRepository) GetByPRN(ctx context.Context, prn string) (*domain.StudentRecord, error) {
	query := `
		SELECT id, prn, name, academic_year, semester, cohort_year,
		       division, roll_number, phone, email, active, created_at, updated_at
		FROM students
		WHERE prn = $1
	`

	var s domain.StudentRecord
	err := r.pool.QueryRow(ctx, query, prn).Scan(
		&s.ID,
		&s.PRN,
		&s.Name,
		&s.AcademicYear,
		&s.Semester,
		&s.CohortYear,
		&s.Division,
		&s.RollNumber,
		&s.Phone,
		&s.Email,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	s.Entries, err = r.entriesByPRN(ctx, prn)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Update overwrites the profile fields of an existing student. Ledger
// entries are never touched by profile updates.
func (r *StudentRepository) Update(ctx context.Context, student *domain.StudentRecord) error {
	query := `
		UPDATE students
		SET name = $2, academic_year = $3, semester = $4, cohort_year = $5,
		    division = $6, roll_number = $7, phone = $8, email = $9,
		    active = $10, updated_at = $11
		WHERE prn = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		student.PRN,
		student.Name,
		student.AcademicYear,
		student.Semester,
		student.CohortYear,
		student.Division,
		student.RollNumber,
		student.Phone,
		student.Email,
		student.Active,
		student.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

// List retrieves a page of students ordered by PRN, entries included.
func (r *StudentRepository) List(ctx context.Context, limit, offset int) ([]*domain.StudentRecord, error) {
	query := `
		SELECT id, prn, name, academic_year, semester, cohort_year,
		       division, roll_number, phone, email, active, created_at, updated_at
		FROM students
		ORDER BY prn
		LIMIT $1 OFFSET $2
	`

	return r.queryStudents(ctx, query, limit, offset)
}

// ListAll retrieves every student with their entries. Used by summary
// aggregation, which needs the complete ledger.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*domain.StudentRecord, error) {
	query := `
		SELECT id, prn, name, academic_year, semester, cohort_year,
		       division, roll_number, phone, email, active, created_at, updated_at
		FROM students
		ORDER BY prn
	`

	return r.queryStudents(ctx, query)
}

// SetActive flips the active flag on a student.
func (r *StudentRepository) SetActive(ctx context.Context, prn string, active bool, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET active = $2, updated_at = $3 WHERE prn = $1`,
		prn, active, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

// AppendEntry adds a ledger entry to a student and bumps their updated_at.
func (r *StudentRepository) AppendEntry(ctx context.Context, prn string, entry *domain.LedgerEntry) error {
	return r.retrier.Retry(ctx, func() error {
		return r.appendEntry(ctx, prn, entry)
	})
}

func (r *StudentRepository) appendEntry(ctx context.Context, prn string, entry *domain.LedgerEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE students SET updated_at = $2 WHERE prn = $1`,
		prn, entry.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	if err := insertEntry(ctx, tx, prn, entry); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// MarkEntryPaid settles one entry identified by its receipt number.
func (r *StudentRepository) MarkEntryPaid(ctx context.Context, prn, receiptNo string, paidAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ledger_entries SET is_paid = TRUE, paid_date = $3 WHERE student_prn = $1 AND receipt_no = $2`,
		prn, receiptNo, paidAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]*domain.StudentRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*domain.StudentRecord
	byPRN := map[string]*domain.StudentRecord{}

	for rows.Next() {
		var s domain.StudentRecord
		err := rows.Scan(
			&s.ID,
			&s.PRN,
			&s.Name,
			&s.AcademicYear,
			&s.Semester,
			&s.CohortYear,
			&s.Division,
			&s.RollNumber,
			&s.Phone,
			&s.Email,
			&s.Active,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		students = append(students, &s)
		byPRN[s.PRN] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(students) == 0 {
		return students, nil
	}

	prns := make([]string, 0, len(students))
	for _, s := range students {
		prns = append(prns, s.PRN)
	}

	entryRows, err := r.pool.Query(ctx, `
		SELECT student_prn, id, amount, reason, kind, category,
		       receipt_no, entry_date, is_paid, paid_date, created_at
		FROM ledger_entries
		WHERE student_prn = ANY($1)
		ORDER BY seq
	`, prns)
	if err != nil {
		return nil, err
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var prn string
		var e domain.LedgerEntry
		err := entryRows.Scan(
			&prn,
			&e.ID,
			&e.Amount,
			&e.Reason,
			&e.Kind,
			&e.Category,
			&e.ReceiptNo,
			&e.Date,
			&e.IsPaid,
			&e.PaidDate,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if s, ok := byPRN[prn]; ok {
			s.Entries = append(s.Entries, e)
		}
	}

	return students, entryRows.Err()
}

func (r *StudentRepository) entriesByPRN(ctx context.Context, prn string) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, amount, reason, kind, category,
		       receipt_no, entry_date, is_paid, paid_date, created_at
		FROM ledger_entries
		WHERE student_prn = $1
		ORDER BY seq
	`, prn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.ID,
			&e.Amount,
			&e.Reason,
			&e.Kind,
			&e.Category,
			&e.ReceiptNo,
			&e.Date,
			&e.IsPaid,
			&e.PaidDate,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func insertEntry(ctx context.Context, tx pgx.Tx, prn string, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			id, student_prn, amount, reason, kind, category,
			receipt_no, entry_date, is_paid, paid_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		entry.ID,
		prn,
		entry.Amount,
		entry.Reason,
		entry.Kind,
		entry.Category,
		entry.ReceiptNo,
		entry.Date,
		entry.IsPaid,
		entry.PaidDate,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}
