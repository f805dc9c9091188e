package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest residual an entry may carry and still count as balanced.
// Half of the smallest currency unit, so any residual that survives rounding to cents fails.
var BalanceTolerance = decimal.RequireFromString("0.005")

// Direction distinguishes debit (+1) from credit (-1) on a leg.
type Direction int8

const (
	Debit  Direction = 1
	Credit Direction = -1
)

// Valid reports whether d is one of the two legal directions.
func (d Direction) Valid() bool {
	return d == Debit || d == Credit
}

// EntryLinks ties a leg to the documents it came from.
type EntryLinks struct {
	CompanyUUID        string
	InvoiceUUID        string
	PayableUUID        string
	TransactionGroupID *int64
	ExternalReference  string
}

// EntryAccount is one leg of an entry. Amount is never negative; the sign lives in Direction.
type EntryAccount struct {
	ID           int64
	Account      AccountRef
	Amount       decimal.Decimal
	Direction    Direction
	Currency     string
	ExchangeRate *decimal.Decimal
	Links        *EntryLinks
}

// Signed returns amount × direction in the leg's own currency.
func (ea EntryAccount) Signed() decimal.Decimal {
	return ea.Amount.Mul(decimal.NewFromInt(int64(ea.Direction)))
}

// SignedBase returns the signed amount converted to base currency. Legs without an
// exchange rate are already in base.
func (ea EntryAccount) SignedBase() decimal.Decimal {
	if ea.ExchangeRate == nil {
		return ea.Signed()
	}
	return ea.Signed().Mul(*ea.ExchangeRate)
}

// balanceGroup is the currency bucket a leg is summed in. Converted legs sum in base.
func (ea EntryAccount) balanceGroup() string {
	if ea.ExchangeRate != nil {
		return ""
	}
	return ea.Currency
}

// EntryGroup batches related entries for balance exclusion and filtering.
type EntryGroup struct {
	ID          int64
	Description string
}

// Entry is a balanced set of legs recorded against one ledger date.
type Entry struct {
	ID          int64
	Description string
	DateLedger  time.Time
	Group       *EntryGroup
	Number      *int64
	Legs        []EntryAccount
}

// Imbalance returns the residual Σ(amount × direction) per currency group, omitting
// groups whose residual is within BalanceTolerance.
func (e *Entry) Imbalance() map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, leg := range e.Legs {
		group := leg.balanceGroup()
		value := leg.Signed()
		if group == "" {
			value = leg.SignedBase()
		}
		sums[group] = sums[group].Add(value)
	}

	for group, sum := range sums {
		if sum.Abs().LessThanOrEqual(BalanceTolerance) {
			delete(sums, group)
		}
	}

	return sums
}

// Validate enforces the double-entry balance law and leg shape.
func (e *Entry) Validate() error {
	if len(e.Legs) < 2 {
		return &UnbalancedEntryError{Legs: len(e.Legs)}
	}

	for _, leg := range e.Legs {
		if !leg.Direction.Valid() {
			return ErrInvalidDirection
		}
		if !leg.Amount.IsPositive() {
			return ErrInvalidAmount
		}
	}

	if imbalance := e.Imbalance(); len(imbalance) > 0 {
		return &UnbalancedEntryError{Legs: len(e.Legs), Imbalance: imbalance}
	}

	return nil
}

// GroupID returns the entry's group id, or 0 when ungrouped.
func (e *Entry) GroupID() int64 {
	if e.Group == nil {
		return 0
	}
	return e.Group.ID
}

// PostedLeg is a stored leg together with the entry it belongs to.
type PostedLeg struct {
	EntryID     int64
	Description string
	DateLedger  time.Time
	Leg         EntryAccount
}

// LegFilter selects posted legs. Zero values match everything; dates are inclusive.
type LegFilter struct {
	AccountID int64
	Start     time.Time
	End       time.Time
}

// Match reports whether a leg of entry passes f.
func (f LegFilter) Match(entry *Entry, leg EntryAccount) bool {
	if f.AccountID != 0 && leg.Account.ID != f.AccountID {
		return false
	}
	if !f.Start.IsZero() && entry.DateLedger.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && entry.DateLedger.After(f.End) {
		return false
	}
	return true
}
