package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iho/ledgerclient/internal/domain"
)

const crossCheckConcurrency = 4

// BalanceUseCase queries per-account balances from the remote ledger.
type BalanceUseCase struct {
	balances BalanceGateway
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(balances BalanceGateway) *BalanceUseCase {
	return &BalanceUseCase{balances: balances}
}

// Balances returns the snapshots for one window.
func (uc *BalanceUseCase) Balances(ctx context.Context, query BalanceQuery) ([]domain.BalanceSnapshot, error) {
	if query.Start.After(query.End) {
		return nil, domain.ErrInvalidWindow
	}
	return uc.balances.Balances(ctx, query)
}

// BalancesMulti returns one snapshot set per end date, each computed from query.Start.
func (uc *BalanceUseCase) BalancesMulti(ctx context.Context, query BalanceMultiQuery) ([][]domain.BalanceSnapshot, error) {
	for _, end := range query.EndDates {
		if query.Start.After(end) {
			return nil, domain.ErrInvalidWindow
		}
	}

	sets, err := uc.balances.BalancesMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(sets) != len(query.EndDates) {
		return nil, fmt.Errorf("%w: got %d, want %d", domain.ErrSnapshotCountMismatch, len(sets), len(query.EndDates))
	}

	return sets, nil
}

// CrossCheckMulti runs BalancesMulti and, concurrently, one single-window query per end
// date, then verifies each multi result against its single-window counterpart.
func (uc *BalanceUseCase) CrossCheckMulti(ctx context.Context, query BalanceMultiQuery) ([][]domain.BalanceSnapshot, error) {
	sets, err := uc.BalancesMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	singles := make([][]domain.BalanceSnapshot, len(query.EndDates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(crossCheckConcurrency)
	for i := range query.EndDates {
		g.Go(func() error {
			snapshots, err := uc.balances.Balances(gctx, query.Single(i))
			if err != nil {
				return fmt.Errorf("end %s: %w", domain.FormatLedgerDate(query.EndDates[i]), err)
			}
			singles[i] = snapshots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range sets {
		if err := domain.VerifySnapshots(singles[i], sets[i]); err != nil {
			return nil, fmt.Errorf("end %s: %w", domain.FormatLedgerDate(query.EndDates[i]), err)
		}
	}

	return sets, nil
}
