package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
)

// Fixture account ids.
const (
	AccountBank        int64 = 1
	AccountReceivables int64 = 2
	AccountRevenue     int64 = 3
	AccountVat         int64 = 4
	AccountRent        int64 = 5
	AccountBankEUR     int64 = 6
)

// Fixture group ids.
const (
	GroupPayments int64 = 10
	GroupRent     int64 = 11
)

// Date parses a YYYY-MM-DD date and panics on malformed input.
func Date(s string) time.Time {
	t, err := domain.ParseLedgerDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Accounts returns the fixture chart of accounts.
func Accounts() []domain.Account {
	return []domain.Account{
		{ID: AccountBank, Number: 1020, Name: "Bank CHF", Currency: "CHF", Type: domain.AccountTypeAsset},
		{ID: AccountReceivables, Number: 1100, Name: "Receivables", Currency: "CHF", Type: domain.AccountTypeAsset},
		{ID: AccountRevenue, Number: 3000, Name: "Revenue", Currency: "CHF", Type: domain.AccountTypeRevenue},
		{ID: AccountVat, Number: 2200, Name: "VAT due", Currency: "CHF", Type: domain.AccountTypeLiability},
		{ID: AccountRent, Number: 6000, Name: "Rent", Currency: "CHF", Type: domain.AccountTypeExpense},
		{ID: AccountBankEUR, Number: 1030, Name: "Bank EUR", Currency: "EUR", Type: domain.AccountTypeAsset},
	}
}

// Directory returns the number→id directory of the fixture accounts.
func Directory() domain.AccountDirectory {
	return domain.NewAccountDirectory(Accounts())
}

// Entries returns a small first-quarter ledger. Every entry is balanced.
func Entries() []domain.Entry {
	eurRate := decimal.RequireFromString("0.95")

	return []domain.Entry{
		{
			ID: 1, Description: "invoice 2024017", DateLedger: Date("2024-01-05"),
			Legs: []domain.EntryAccount{
				leg(AccountReceivables, "1077", domain.Debit),
				leg(AccountRevenue, "1000", domain.Credit),
				leg(AccountVat, "77", domain.Credit),
			},
		},
		{
			ID: 2, Description: "payment 2024017", DateLedger: Date("2024-01-20"),
			Group: &domain.EntryGroup{ID: GroupPayments, Description: "january payments"},
			Legs: []domain.EntryAccount{
				leg(AccountBank, "1077", domain.Debit),
				leg(AccountReceivables, "1077", domain.Credit),
			},
		},
		{
			ID: 3, Description: "rent february", DateLedger: Date("2024-02-01"),
			Legs: []domain.EntryAccount{
				leg(AccountRent, "2000", domain.Debit),
				leg(AccountBank, "2000", domain.Credit),
			},
		},
		{
			ID: 4, Description: "eur sale", DateLedger: Date("2024-02-15"),
			Legs: []domain.EntryAccount{
				{Account: domain.AccountRef{ID: AccountBankEUR}, Amount: decimal.NewFromInt(100), Direction: domain.Debit, Currency: "EUR", ExchangeRate: &eurRate},
				leg(AccountRevenue, "95", domain.Credit),
			},
		},
		{
			ID: 5, Description: "rent march", DateLedger: Date("2024-03-10"),
			Group: &domain.EntryGroup{ID: GroupRent, Description: "rent"},
			Legs: []domain.EntryAccount{
				leg(AccountRent, "2000", domain.Debit),
				leg(AccountBank, "2000", domain.Credit),
			},
		},
	}
}

func leg(account int64, amount string, direction domain.Direction) domain.EntryAccount {
	return domain.EntryAccount{
		Account:   domain.AccountRef{ID: account},
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
	}
}

// RecomputeBalance sums amount × direction (in base) over the legs of accountID that fall
// in [start, end] and are not excluded. It deliberately shares no code with
// domain.ComputeBalances.
func RecomputeBalance(entries []domain.Entry, accountID int64, start, end time.Time, filters domain.BalanceFilters) (decimal.Decimal, int) {
	excluded := func(e domain.Entry) bool {
		for _, id := range filters.ExcludeTransactionIDs {
			if id == e.ID {
				return true
			}
		}
		for _, id := range filters.ExcludeGroupIDs {
			if e.Group != nil && id == e.Group.ID {
				return true
			}
		}
		return false
	}

	total := decimal.Zero
	legs := 0
	for _, e := range entries {
		if e.DateLedger.Before(start) || e.DateLedger.After(end) || excluded(e) {
			continue
		}
		for _, l := range e.Legs {
			if l.Account.ID != accountID {
				continue
			}
			value := l.Amount.Mul(decimal.NewFromInt(int64(l.Direction)))
			if l.ExchangeRate != nil {
				value = value.Mul(*l.ExchangeRate)
			}
			total = total.Add(value)
			legs++
		}
	}
	return total, legs
}

// AssertSnapshotsConsistent fails t when any snapshot disagrees with RecomputeBalance.
func AssertSnapshotsConsistent(t *testing.T, entries []domain.Entry, snapshots []domain.BalanceSnapshot, start, end time.Time, filters domain.BalanceFilters) {
	t.Helper()

	for _, s := range snapshots {
		want, legs := RecomputeBalance(entries, s.Account.ID, start, end, filters)
		if !s.Balance.Equal(want) || s.LegCount != legs {
			t.Fatalf("account %d over %s..%s: got %s/%d legs, want %s/%d legs",
				s.Account.ID, domain.FormatLedgerDate(start), domain.FormatLedgerDate(end), s.Balance, s.LegCount, want, legs)
		}
	}
}
