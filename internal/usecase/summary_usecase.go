package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
)

// Balance status values.
const (
	StatusSurplus = "surplus"
	StatusDeficit = "deficit"
)

// FinancialSummary is the cross-cutting financial picture derived from the
// two ledgers. It is recomputed on demand, never stored.
type FinancialSummary struct {
	TotalIncome           decimal.Decimal                    `json:"total_income"`
	TotalExpenditure      decimal.Decimal                    `json:"total_expenditure"`
	Balance               decimal.Decimal                    `json:"balance"`
	Status                string                             `json:"status"`
	StudentCount          int                                `json:"student_count"`
	EntryCount            int                                `json:"entry_count"`
	ExpenditureCount      int                                `json:"expenditure_count"`
	ExpenditureByCategory map[domain.ExpenseCategory]decimal.Decimal `json:"expenditure_by_category"`
	GeneratedAt           time.Time                          `json:"generated_at"`
}

// MonthlyReportRow holds one calendar month's figures.
type MonthlyReportRow struct {
	Month            int             `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expenditure      decimal.Decimal `json:"expenditure"`
	Balance          decimal.Decimal `json:"balance"`
	EntryCount       int             `json:"entry_count"`
	ExpenditureCount int             `json:"expenditure_count"`
}

// MonthlyReport is a 12-month time series for one year. Months with no
// activity report zero, not absence.
type MonthlyReport struct {
	Year              int                `json:"year"`
	Months            []MonthlyReportRow `json:"months"`
	TotalIncome       decimal.Decimal    `json:"total_income"`
	TotalExpenditure  decimal.Decimal    `json:"total_expenditure"`
	TotalBalance      decimal.Decimal    `json:"total_balance"`
	TotalEntries      int                `json:"total_entries"`
	TotalExpenditures int                `json:"total_expenditures"`
}

// SummaryUseCase derives statistics over the student-payment ledger and the
// expenditure ledger. It is strictly read-only.
type SummaryUseCase struct {
	studentRepo StudentRepository
	expRepo     ExpenditureRepository
	cache       SummaryCache
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil.
func NewSummaryUseCase(studentRepo StudentRepository, expRepo ExpenditureRepository, cache SummaryCache) *SummaryUseCase {
	return &SummaryUseCase{
		studentRepo: studentRepo,
		expRepo:     expRepo,
		cache:       cache,
	}
}

// GetFinancialSummary computes totals, balance and the per-category
// expenditure breakdown across both ledgers.
func (uc *SummaryUseCase) GetFinancialSummary(ctx context.Context) (*FinancialSummary, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, SummaryCacheKey); err == nil && len(raw) > 0 {
			var cached FinancialSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	students, err := uc.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	expenditures, err := uc.expRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		TotalIncome:           decimal.Zero,
		TotalExpenditure:      decimal.Zero,
		StudentCount:          len(students),
		ExpenditureCount:      len(expenditures),
		ExpenditureByCategory: make(map[domain.ExpenseCategory]decimal.Decimal),
		GeneratedAt:           time.Now().UTC(),
	}

	for _, s := range students {
		for _, e := range s.Entries {
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
			summary.EntryCount++
		}
	}

	for _, exp := range expenditures {
		summary.TotalExpenditure = summary.TotalExpenditure.Add(exp.Amount)

		current, ok := summary.ExpenditureByCategory[exp.Category]
		if !ok {
			current = decimal.Zero
		}
		summary.ExpenditureByCategory[exp.Category] = current.Add(exp.Amount)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenditure)
	summary.Status = StatusDeficit
	if summary.Balance.GreaterThanOrEqual(decimal.Zero) {
		summary.Status = StatusSurplus
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, SummaryCacheKey, raw, SummaryCacheTTL)
		}
	}

	return summary, nil
}

// GetMonthlyReport partitions both ledgers' dates falling within the year by
// calendar month. A zero year defaults to the current calendar year.
func (uc *SummaryUseCase) GetMonthlyReport(ctx context.Context, year int) (*MonthlyReport, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	students, err := uc.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	expenditures, err := uc.expRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:             year,
		Months:           make([]MonthlyReportRow, 12),
		TotalIncome:      decimal.Zero,
		TotalExpenditure: decimal.Zero,
	}

	for i := range report.Months {
		report.Months[i] = MonthlyReportRow{
			Month:       i + 1,
			Income:      decimal.Zero,
			Expenditure: decimal.Zero,
			Balance:     decimal.Zero,
		}
	}

	for _, s := range students {
		for _, e := range s.Entries {
			// Partitioning uses the entry's own date, not creation time.
			d := e.Date.UTC()
			if d.Year() != year {
				continue
			}
			row := &report.Months[int(d.Month())-1]
			row.Income = row.Income.Add(e.Amount)
			row.EntryCount++
		}
	}

	for _, exp := range expenditures {
		d := exp.Date.UTC()
		if d.Year() != year {
			continue
		}
		row := &report.Months[int(d.Month())-1]
		row.Expenditure = row.Expenditure.Add(exp.Amount)
		row.ExpenditureCount++
	}

	for i := range report.Months {
		row := &report.Months[i]
		row.Balance = row.Income.Sub(row.Expenditure)

		report.TotalIncome = report.TotalIncome.Add(row.Income)
		report.TotalExpenditure = report.TotalExpenditure.Add(row.Expenditure)
		report.TotalEntries += row.EntryCount
		report.TotalExpenditures += row.ExpenditureCount
	}

	report.TotalBalance = report.TotalIncome.Sub(report.TotalExpenditure)

	return report, nil
}
