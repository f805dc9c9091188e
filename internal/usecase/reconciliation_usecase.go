package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
)

// ReconciliationUseCase compares the remote store's balances with a local recomputation.
type ReconciliationUseCase struct {
	balances BalanceGateway
	metrics  Metrics
	logger   zerolog.Logger
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(balances BalanceGateway, metrics Metrics, logger zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		balances: balances,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

// ReconciliationReport represents the outcome of one reconciliation run
type ReconciliationReport struct {
	Start      time.Time
	End        time.Time
	Accounts   int
	Mismatched []int64
	CheckedAt  time.Time
}

// IsReconciled reports whether every account matched.
func (r *ReconciliationReport) IsReconciled() bool {
	return len(r.Mismatched) == 0
}

// Reconcile fetches the remote snapshots for query and checks them against
// ComputeBalances over the given accounts and entries. A mismatch is reported in the
// report and returned as a *domain.BalanceMismatchError.
func (uc *ReconciliationUseCase) Reconcile(
	ctx context.Context,
	accounts []domain.Account,
	entries []domain.Entry,
	query BalanceQuery,
) (*ReconciliationReport, error) {
	expected, err := domain.ComputeBalances(accounts, entries, query.Start, query.End, query.Filters)
	if err != nil {
		return nil, err
	}

	got, err := uc.balances.Balances(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		Start:     query.Start,
		End:       query.End,
		Accounts:  len(expected),
		CheckedAt: time.Now().UTC(),
	}

	verr := domain.VerifySnapshots(expected, got)
	var mismatch *domain.BalanceMismatchError
	if errors.As(verr, &mismatch) {
		report.Mismatched = mismatch.Accounts
	} else if verr != nil {
		return nil, verr
	}

	uc.metrics.BalanceVerified(report.IsReconciled())
	if !report.IsReconciled() {
		uc.logger.Warn().
			Ints64("accounts", report.Mismatched).
			Str("start", domain.FormatLedgerDate(query.Start)).
			Str("end", domain.FormatLedgerDate(query.End)).
			Msg("balance mismatch")
		return report, verr
	}

	return report, nil
}
