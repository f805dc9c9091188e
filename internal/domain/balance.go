package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceFilters narrows a balance query.
type BalanceFilters struct {
	AccountIDs            []int64
	OnlyNonZero           bool
	OnlyWithAtLeastOneTx  bool
	ExcludeTransactionIDs []int64
	ExcludeGroupIDs       []int64
}

// BalanceSnapshot is the derived balance of one account over a date window. It is never
// stored; every query recomputes it from the legs.
type BalanceSnapshot struct {
	Account       AccountRef
	Number        int64
	Currency      string
	Balance       decimal.Decimal
	BalanceNative decimal.Decimal
	LegCount      int
	EntryCount    int
}

type accumulator struct {
	snapshot BalanceSnapshot
	entries  map[int64]struct{}
}

// ComputeBalances sums Σ(amount × direction) per account over the legs whose entry has
// a ledger date in [start, end] and is not excluded by id or group.
func ComputeBalances(accounts []Account, entries []Entry, start, end time.Time, filters BalanceFilters) ([]BalanceSnapshot, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidWindow, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	only := idSet(filters.AccountIDs)
	excludedEntries := idSet(filters.ExcludeTransactionIDs)
	excludedGroups := idSet(filters.ExcludeGroupIDs)

	acc := make(map[int64]*accumulator)
	track := func(id int64) *accumulator {
		if a, ok := acc[id]; ok {
			return a
		}
		a := &accumulator{
			snapshot: BalanceSnapshot{Account: AccountRef{ID: id}},
			entries:  make(map[int64]struct{}),
		}
		acc[id] = a
		return a
	}

	for _, account := range accounts {
		if len(only) > 0 && !has(only, account.ID) {
			continue
		}
		a := track(account.ID)
		a.snapshot.Number = account.Number
		a.snapshot.Currency = account.Currency
	}

	for _, entry := range entries {
		if entry.DateLedger.Before(start) || entry.DateLedger.After(end) {
			continue
		}
		if has(excludedEntries, entry.ID) {
			continue
		}
		// Group exclusion never drops ungrouped entries, even for group id 0.
		if entry.Group != nil && has(excludedGroups, entry.Group.ID) {
			continue
		}

		for _, leg := range entry.Legs {
			if len(only) > 0 && !has(only, leg.Account.ID) {
				continue
			}
			a := track(leg.Account.ID)
			a.snapshot.Balance = a.snapshot.Balance.Add(leg.SignedBase())
			a.snapshot.BalanceNative = a.snapshot.BalanceNative.Add(leg.Signed())
			a.snapshot.LegCount++
			a.entries[entry.ID] = struct{}{}
		}
	}

	out := make([]BalanceSnapshot, 0, len(acc))
	for _, a := range acc {
		a.snapshot.EntryCount = len(a.entries)
		if filters.OnlyNonZero && a.snapshot.Balance.IsZero() {
			continue
		}
		if filters.OnlyWithAtLeastOneTx && a.snapshot.LegCount == 0 {
			continue
		}
		out = append(out, a.snapshot)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Account.ID < out[j].Account.ID })
	return out, nil
}

// ComputeBalancesMulti computes one snapshot set per end date, each independently from
// start. It is not a running delta between consecutive dates.
func ComputeBalancesMulti(accounts []Account, entries []Entry, start time.Time, endDates []time.Time, filters BalanceFilters) ([][]BalanceSnapshot, error) {
	out := make([][]BalanceSnapshot, len(endDates))
	for i, end := range endDates {
		set, err := ComputeBalances(accounts, entries, start, end, filters)
		if err != nil {
			return nil, err
		}
		out[i] = set
	}
	return out, nil
}

// BalanceMismatchError lists the accounts whose reported balance disagrees with the
// recomputation.
type BalanceMismatchError struct {
	Accounts []int64
	Details  []string
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBalanceMismatch, strings.Join(e.Details, "; "))
}

func (e *BalanceMismatchError) Is(target error) bool {
	return target == ErrBalanceMismatch
}

// VerifySnapshots checks a reported snapshot set against an expected one.
func VerifySnapshots(expected, got []BalanceSnapshot) error {
	want := make(map[int64]BalanceSnapshot, len(expected))
	for _, s := range expected {
		want[s.Account.ID] = s
	}

	mismatch := &BalanceMismatchError{}
	seen := make(map[int64]struct{}, len(got))
	for _, s := range got {
		seen[s.Account.ID] = struct{}{}
		w, ok := want[s.Account.ID]
		switch {
		case !ok:
			mismatch.add(s.Account.ID, "unexpected account")
		case !w.Balance.Equal(s.Balance):
			mismatch.add(s.Account.ID, fmt.Sprintf("balance %s, want %s", s.Balance, w.Balance))
		case !w.BalanceNative.Equal(s.BalanceNative):
			mismatch.add(s.Account.ID, fmt.Sprintf("native balance %s, want %s", s.BalanceNative, w.BalanceNative))
		case w.LegCount != s.LegCount || w.EntryCount != s.EntryCount:
			mismatch.add(s.Account.ID, fmt.Sprintf("counts %d/%d, want %d/%d", s.LegCount, s.EntryCount, w.LegCount, w.EntryCount))
		}
	}

	for _, s := range expected {
		if _, ok := seen[s.Account.ID]; !ok {
			mismatch.add(s.Account.ID, "missing account")
		}
	}

	if len(mismatch.Accounts) > 0 {
		return mismatch
	}
	return nil
}

func (e *BalanceMismatchError) add(accountID int64, detail string) {
	e.Accounts = append(e.Accounts, accountID)
	e.Details = append(e.Details, fmt.Sprintf("account %d: %s", accountID, detail))
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func has(set map[int64]struct{}, id int64) bool {
	_, ok := set[id]
	return ok
}
