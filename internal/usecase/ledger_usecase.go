package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	balances BalanceGateway
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(balances BalanceGateway) *LedgerUseCase {
	return &LedgerUseCase{
		balances: balances,
	}
}

// CheckConsistency asks the store for its ledger-wide total and fails when any entry is
// reported unbalanced or when the total exceeds what balanced entries can leave behind,
// domain.BalanceTolerance per entry.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*BalanceCheck, error) {
	check, err := uc.balances.CheckBalance(ctx)
	if err != nil {
		return nil, err
	}

	if check.Total.Abs().GreaterThan(residualLimit(check.EntryCount)) {
		return check, fmt.Errorf("%w: total %s", ErrInconsistentLedger, check.Total)
	}

	if len(check.UnbalancedEntries) > 0 {
		return check, fmt.Errorf("%w: unbalanced entries %v", ErrInconsistentLedger, check.UnbalancedEntries)
	}

	return check, nil
}

// residualLimit is the largest ledger-wide total entryCount balanced entries can sum to.
func residualLimit(entryCount int) decimal.Decimal {
	return domain.BalanceTolerance.Mul(decimal.NewFromInt(int64(entryCount)))
}
