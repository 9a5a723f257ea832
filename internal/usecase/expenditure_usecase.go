package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
)

// ExpenditureUseCase handles department expenditure records.
type ExpenditureUseCase struct {
	expRepo ExpenditureRepository
	idGen   IDGenerator
	cache   SummaryCache
}

// NewExpenditureUseCase creates a new ExpenditureUseCase. cache may be nil.
func NewExpenditureUseCase(expRepo ExpenditureRepository, idGen IDGenerator, cache SummaryCache) *ExpenditureUseCase {
	return &ExpenditureUseCase{
		expRepo: expRepo,
		idGen:   idGen,
		cache:   cache,
	}
}

// CreateExpenditureInput represents input for recording an expenditure.
type CreateExpenditureInput struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Department  string
	Date        *time.Time
	CreatedBy   string
	ReceiptNo   string
	Notes       string
}

// CreateExpenditure records a new expenditure.
func (uc *ExpenditureUseCase) CreateExpenditure(ctx context.Context, input CreateExpenditureInput) (*domain.ExpenditureRecord, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	category, err := domain.ParseExpenseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exp := &domain.ExpenditureRecord{
		ID:          uc.idGen.Generate(),
		Amount:      input.Amount,
		Description: input.Description,
		Category:    category,
		Department:  input.Department,
		Date:        date,
		CreatedBy:   input.CreatedBy,
		ReceiptNo:   input.ReceiptNo,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.expRepo.Create(ctx, exp); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return exp, nil
}

// GetExpenditure retrieves an expenditure by ID.
func (uc *ExpenditureUseCase) GetExpenditure(ctx context.Context, id string) (*domain.ExpenditureRecord, error) {
	return uc.expRepo.GetByID(ctx, id)
}

// UpdateExpenditureInput represents input for updating an expenditure. Nil
// fields are left unchanged.
type UpdateExpenditureInput struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Department  *string
	Date        *time.Time
	ReceiptNo   *string
	Notes       *string
}

// UpdateExpenditure applies a partial update, last write wins.
func (uc *ExpenditureUseCase) UpdateExpenditure(ctx context.Context, id string, input UpdateExpenditureInput) (*domain.ExpenditureRecord, error) {
	exp, err := uc.expRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		exp.Amount = *input.Amount
	}
	if input.Category != nil {
		category, err := domain.ParseExpenseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		exp.Category = category
	}
	if input.Description != nil {
		exp.Description = *input.Description
	}
	if input.Department != nil {
		exp.Department = *input.Department
	}
	if input.Date != nil {
		exp.Date = input.Date.UTC()
	}
	if input.ReceiptNo != nil {
		exp.ReceiptNo = *input.ReceiptNo
	}
	if input.Notes != nil {
		exp.Notes = *input.Notes
	}

	exp.UpdatedAt = time.Now().UTC()

	if err := uc.expRepo.Update(ctx, exp); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return exp, nil
}

// DeleteExpenditure removes an expenditure record.
func (uc *ExpenditureUseCase) DeleteExpenditure(ctx context.Context, id string) error {
	if err := uc.expRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx)

	return nil
}

// ListExpenditures lists expenditures matching the filter.
func (uc *ExpenditureUseCase) ListExpenditures(ctx context.Context, filter ExpenditureFilter) ([]*domain.ExpenditureRecord, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.expRepo.List(ctx, filter)
}

func (uc *ExpenditureUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, SummaryCacheKey)
	}
}
