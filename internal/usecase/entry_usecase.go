package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
)

// EntryUseCase builds entries and records them on the remote ledger.
type EntryUseCase struct {
	accounts *AccountUseCase
	entries  EntryGateway
	locks    LockGateway
	metrics  Metrics
	logger   zerolog.Logger
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(accounts *AccountUseCase, entries EntryGateway, locks LockGateway, metrics Metrics, logger zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{
		accounts: accounts,
		entries:  entries,
		locks:    locks,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

// EntryInput represents input for building an entry.
type EntryInput struct {
	Description string
	DateLedger  time.Time
	Legs        []domain.RawLeg
	Options     domain.EntryOptions
}

// Build resolves the raw legs against the account directory and returns a balanced entry
// without sending it anywhere.
func (uc *EntryUseCase) Build(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Options.Currency); err != nil {
		return nil, err
	}

	dir, err := uc.accounts.Directory(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := domain.BuildEntryWithOptions(input.Description, input.DateLedger, dir, input.Legs, input.Options)
	if err != nil {
		uc.metrics.EntryRejected(rejectReason(err))
		return nil, err
	}

	uc.metrics.EntryBuilt()
	return entry, nil
}

// Record builds an entry and inserts it.
func (uc *EntryUseCase) Record(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	entry, err := uc.Build(ctx, input)
	if err != nil {
		return nil, err
	}

	id, err := uc.entries.InsertEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	uc.logger.Info().
		Int64("entry_id", id).
		Int("legs", len(entry.Legs)).
		Str("date_ledger", domain.FormatLedgerDate(entry.DateLedger)).
		Msg("entry recorded")

	return entry, nil
}

// Update rebuilds an entry and replaces the stored one. Locked entries are refused
// before anything is sent.
func (uc *EntryUseCase) Update(ctx context.Context, id int64, input EntryInput) (*domain.Entry, error) {
	if err := uc.ensureMutable(ctx, id); err != nil {
		return nil, err
	}

	entry, err := uc.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := uc.entries.UpdateEntry(ctx, id, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Delete removes an unlocked entry.
func (uc *EntryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.ensureMutable(ctx, id); err != nil {
		return err
	}
	return uc.entries.DeleteEntry(ctx, id)
}

// Get retrieves an entry by id.
func (uc *EntryUseCase) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	return uc.entries.GetEntry(ctx, id)
}

// Lock marks an entry as reconciled and returns the lock uuid.
func (uc *EntryUseCase) Lock(ctx context.Context, id int64) (string, error) {
	return uc.locks.LockEntry(ctx, id)
}

// Unlock deletes a lock, making its entry mutable again.
func (uc *EntryUseCase) Unlock(ctx context.Context, uuid string) error {
	return uc.locks.DeleteLock(ctx, uuid)
}

func (uc *EntryUseCase) ensureMutable(ctx context.Context, id int64) error {
	locks, err := uc.locks.ListLocks(ctx)
	if err != nil {
		return err
	}
	return domain.CheckMutable(locks, id)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, domain.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "other"
	}
}
