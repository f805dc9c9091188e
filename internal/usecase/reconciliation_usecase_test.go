package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/testutil"
	"github.com/iho/ledgerclient/internal/usecase"
	"github.com/iho/ledgerclient/internal/usecase/mocks"
)

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	query := usecase.BalanceQuery{Start: testutil.Date("2024-01-01"), End: testutil.Date("2024-03-31")}

	t.Run("reconciled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockBalanceGateway(ctrl)
		localBalances(t, gw)
		metrics := mocks.NewMockMetrics()

		uc := usecase.NewReconciliationUseCase(gw, metrics, zerolog.Nop())
		report, err := uc.Reconcile(context.Background(), testutil.Accounts(), testutil.Entries(), query)
		require.NoError(t, err)
		assert.True(t, report.IsReconciled())
		assert.Equal(t, len(testutil.Accounts()), report.Accounts)
		assert.Equal(t, 1, metrics.Verified[true])
	})

	t.Run("remote drift", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockBalanceGateway(ctrl)
		gw.EXPECT().Balances(gomock.Any(), query).DoAndReturn(
			func(ctx context.Context, q usecase.BalanceQuery) ([]domain.BalanceSnapshot, error) {
				snapshots, err := domain.ComputeBalances(testutil.Accounts(), testutil.Entries(), q.Start, q.End, q.Filters)
				if err != nil {
					return nil, err
				}
				snapshots[4].Balance = snapshots[4].Balance.Sub(decimal.NewFromInt(2000))
				return snapshots, nil
			})
		metrics := mocks.NewMockMetrics()

		uc := usecase.NewReconciliationUseCase(gw, metrics, zerolog.Nop())
		report, err := uc.Reconcile(context.Background(), testutil.Accounts(), testutil.Entries(), query)
		require.ErrorIs(t, err, domain.ErrBalanceMismatch)
		require.NotNil(t, report)
		assert.Equal(t, []int64{testutil.AccountRent}, report.Mismatched)
		assert.Equal(t, 1, metrics.Verified[false])
	})
}
