package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/usecase"
)

// ExpenditureRepository implements usecase.ExpenditureRepository.
type ExpenditureRepository struct {
	pool *pgxpool.Pool
}

// NewExpenditureRepository creates a new ExpenditureRepository.
func NewExpenditureRepository(pool *pgxpool.Pool) *ExpenditureRepository {
	return &ExpenditureRepository{pool: pool}
}

// Create inserts a new expenditure.
func (r *ExpenditureRepository) Create(ctx context.Context, exp *domain.ExpenditureRecord) error {
	query := `
		INSERT INTO expenditures (
			id, amount, description, category, department, expense_date,
			created_by, receipt_no, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		exp.ID,
		exp.Amount,
		exp.Description,
		exp.Category,
		exp.Department,
		exp.Date,
		exp.CreatedBy,
		exp.ReceiptNo,
		exp.Notes,
		exp.CreatedAt,
		exp.UpdatedAt,
	)

	return err
}

// GetByID retrieves an expenditure by ID.
func (r *ExpenditureRepository) GetByID(ctx context.Context, id string) (*domain.ExpenditureRecord, error) {
	query := `
		SELECT id, amount, description, category, department, expense_date,
		       created_by, receipt_no, notes, created_at, updated_at
		FROM expenditures
		WHERE id = $1
	`

	var e domain.ExpenditureRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Amount,
		&e.Description,
		&e.Category,
		&e.Department,
		&e.Date,
		&e.CreatedBy,
		&e.ReceiptNo,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenditureNotFound
		}
		return nil, err
	}

	return &e, nil
}

// Update overwrites an existing expenditure.
func (r *ExpenditureRepository) Update(ctx context.Context, exp *domain.ExpenditureRecord) error {
	query := `
		UPDATE expenditures
		SET amount = $2, description = $3, category = $4, department = $5,
		    expense_date = $6, receipt_no = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		exp.ID,
		exp.Amount,
		exp.Description,
		exp.Category,
		exp.Department,
		exp.Date,
		exp.ReceiptNo,
		exp.Notes,
		exp.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenditureNotFound
	}

	return nil
}

// Delete removes an expenditure.
func (r *ExpenditureRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenditures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenditureNotFound
	}

	return nil
}

// List retrieves expenditures matching the filter, newest first.
func (r *ExpenditureRepository) List(ctx context.Context, filter usecase.ExpenditureFilter) ([]*domain.ExpenditureRecord, error) {
	query := `
		SELECT id, amount, description, category, department, expense_date,
		       created_by, receipt_no, notes, created_at, updated_at
		FROM expenditures
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	if filter.Category != "" {
		query += fmt.Sprintf(` AND category = $%d`, argPos)
		args = append(args, filter.Category)
		argPos++
	}

	if filter.Department != "" {
		query += fmt.Sprintf(` AND department = $%d`, argPos)
		args = append(args, filter.Department)
		argPos++
	}

	if filter.From != nil {
		query += fmt.Sprintf(` AND expense_date >= $%d`, argPos)
		args = append(args, *filter.From)
		argPos++
	}

	if filter.To != nil {
		query += fmt.Sprintf(` AND expense_date <= $%d`, argPos)
		args = append(args, *filter.To)
		argPos++
	}

	query += ` ORDER BY expense_date DESC, created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, filter.Offset)
	}

	return r.queryExpenditures(ctx, query, args...)
}

// ListAll retrieves every expenditure. Used by summary aggregation.
func (r *ExpenditureRepository) ListAll(ctx context.Context) ([]*domain.ExpenditureRecord, error) {
	query := `
		SELECT id, amount, description, category, department, expense_date,
		       created_by, receipt_no, notes, created_at, updated_at
		FROM expenditures
		ORDER BY expense_date DESC, created_at DESC
	`

	return r.queryExpenditures(ctx, query)
}

func (r *ExpenditureRepository) queryExpenditures(ctx context.Context, query string, args ...any) ([]*domain.ExpenditureRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenditures []*domain.ExpenditureRecord
	for rows.Next() {
		var e domain.ExpenditureRecord
		err := rows.Scan(
			&e.ID,
			&e.Amount,
			&e.Description,
			&e.Category,
			&e.Department,
			&e.Date,
			&e.CreatedBy,
			&e.ReceiptNo,
			&e.Notes,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		expenditures = append(expenditures, &e)
	}

	return expenditures, rows.Err()
}
