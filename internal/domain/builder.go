package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawLeg is an (account number, signed amount) pair in the caller's sign convention.
type RawLeg struct {
	AccountNumber int64
	Amount        decimal.Decimal
}

// EntryOptions carries the optional entry and leg attributes.
type EntryOptions struct {
	Group        *EntryGroup
	Number       *int64
	Currency     string
	ExchangeRate *decimal.Decimal
	Links        *EntryLinks
}

// BuildEntry converts raw legs into a balanced Entry.
//
// A positive caller amount on an account is stored as money leaving that account: the
// stored direction is the negation of the caller's sign. Either the whole entry is
// returned or an error, never a partial or corrected entry.
func BuildEntry(description string, dateLedger time.Time, directory AccountDirectory, legs []RawLeg) (*Entry, error) {
	return BuildEntryWithOptions(description, dateLedger, directory, legs, EntryOptions{})
}

// BuildEntryWithOptions is BuildEntry with group, number, currency and links applied.
func BuildEntryWithOptions(
	description string,
	dateLedger time.Time,
	directory AccountDirectory,
	legs []RawLeg,
	opts EntryOptions,
) (*Entry, error) {
	if len(legs) < 2 {
		return nil, &UnbalancedEntryError{Legs: len(legs)}
	}

	resolved := make([]EntryAccount, 0, len(legs))
	for _, raw := range legs {
		accountID, err := directory.Resolve(raw.AccountNumber)
		if err != nil {
			return nil, err
		}

		leg, err := toEntryAccount(accountID, raw.Amount.Neg())
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", raw.AccountNumber, err)
		}

		leg.Currency = opts.Currency
		leg.ExchangeRate = opts.ExchangeRate
		leg.Links = opts.Links
		resolved = append(resolved, leg)
	}

	entry := &Entry{
		Description: description,
		DateLedger:  dateLedger,
		Group:       opts.Group,
		Number:      opts.Number,
		Legs:        resolved,
	}

	if imbalance := entry.Imbalance(); len(imbalance) > 0 {
		return nil, &UnbalancedEntryError{Legs: len(resolved), Imbalance: imbalance}
	}

	return entry, nil
}

func toEntryAccount(accountID int64, amount decimal.Decimal) (EntryAccount, error) {
	if amount.IsZero() {
		return EntryAccount{}, ErrInvalidAmount
	}

	return EntryAccount{
		Account:   AccountRef{ID: accountID},
		Amount:    amount.Abs(),
		Direction: Direction(amount.Sign()),
	}, nil
}
