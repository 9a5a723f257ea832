package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
)

// LedgerUseCase handles per-student ledger mutations.
type LedgerUseCase struct {
	studentRepo StudentRepository
	idGen       IDGenerator
	notifier    Notifier
	cache       SummaryCache
}

// NewLedgerUseCase creates a new LedgerUseCase. notifier and cache may be nil.
func NewLedgerUseCase(studentRepo StudentRepository, idGen IDGenerator, notifier Notifier, cache SummaryCache) *LedgerUseCase {
	return &LedgerUseCase{
		studentRepo: studentRepo,
		idGen:       idGen,
		notifier:    notifier,
		cache:       cache,
	}
}

// AppendEntryInput represents input for appending a ledger entry.
type AppendEntryInput struct {
	PRN      string
	Amount   decimal.Decimal
	Reason   string
	Kind     domain.EntryKind
	Category string
	Date     *time.Time
}

// AppendEntry charges a fine or fee to a student. The call fails atomically
// on a non-positive amount or an unknown PRN; on success the entry is
// persisted already marked paid and a best-effort receipt notification is
// dispatched in the background.
func (uc *LedgerUseCase) AppendEntry(ctx context.Context, input AppendEntryInput) (*domain.LedgerEntry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	prn := domain.NormalizePRN(input.PRN)

	student, err := uc.studentRepo.GetByPRN(ctx, prn)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	kind := input.Kind
	if kind == "" {
		kind = domain.EntryKindFine
	}

	category := input.Category
	if category == "" {
		category = domain.DefaultEntryCategory
	}

	entry := &domain.LedgerEntry{
		ID:        uc.idGen.Generate(),
		Amount:    input.Amount,
		Reason:    input.Reason,
		Kind:      kind,
		Category:  category,
		ReceiptNo: domain.NewReceiptNumber(now),
		Date:      date,
		IsPaid:    true,
		PaidDate:  &now,
		CreatedAt: now,
	}

	if err := uc.studentRepo.AppendEntry(ctx, prn, entry); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, SummaryCacheKey)
	}

	uc.notify(student, *entry)

	return entry, nil
}

// MarkEntryPaid flips the paid flag on a single entry. This is the only
// mutation an appended entry ever sees.
func (uc *LedgerUseCase) MarkEntryPaid(ctx context.Context, prn, receiptNo string) error {
	return uc.studentRepo.MarkEntryPaid(ctx, domain.NormalizePRN(prn), receiptNo, time.Now().UTC())
}

// notify dispatches the receipt notification as an unawaited background
// task. Failures are logged and never joined with the caller's response.
func (uc *LedgerUseCase) notify(student *domain.StudentRecord, entry domain.LedgerEntry) {
	if uc.notifier == nil || student.Email == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
		defer cancel()

		if err := uc.notifier.SendReceipt(ctx, student.Email, student.Name, entry); err != nil {
			log.Warn().
				Err(err).
				Str("prn", student.PRN).
				Str("receipt_no", entry.ReceiptNo).
				Msg("receipt notification failed")
		}
	}()
}
