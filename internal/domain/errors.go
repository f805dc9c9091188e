package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Entry errors
	ErrUnknownAccount   = errors.New("unknown account")
	ErrUnbalancedEntry  = errors.New("entry is not balanced")
	ErrInvalidAmount    = errors.New("leg amount must be non-zero")
	ErrImmutableEntry   = errors.New("entry is locked and cannot be modified")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidDirection = errors.New("leg direction must be 1 or -1")

	// Import errors
	ErrMissingMapping = errors.New("missing mapping")
	ErrDegenerateVat  = errors.New("vat equals total, rate is undefined")
	ErrAmbiguousMatch = errors.New("more than one record matches")

	// Balance errors
	ErrBalanceMismatch       = errors.New("balance snapshot does not match recorded legs")
	ErrSnapshotCountMismatch = errors.New("snapshot count does not match requested end dates")
	ErrInvalidWindow         = errors.New("start date is after end date")

	// Store errors
	ErrNotFound        = errors.New("not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrLockNotFound    = errors.New("lock not found")
)

// UnknownAccountError reports a raw leg whose account number is absent from the directory.
type UnknownAccountError struct {
	Number int64
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("could not map account %d", e.Number)
}

func (e *UnknownAccountError) Is(target error) bool {
	return target == ErrUnknownAccount
}

// UnbalancedEntryError carries the residual per currency group.
type UnbalancedEntryError struct {
	Legs      int
	Imbalance map[string]decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	if len(e.Imbalance) == 0 {
		return fmt.Sprintf("%s: %d leg(s), at least 2 required", ErrUnbalancedEntry, e.Legs)
	}

	groups := make([]string, 0, len(e.Imbalance))
	for currency := range e.Imbalance {
		groups = append(groups, currency)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, currency := range groups {
		label := currency
		if label == "" {
			label = "base"
		}
		parts = append(parts, label+"="+e.Imbalance[currency].String())
	}

	return fmt.Sprintf("%s: residual %s", ErrUnbalancedEntry, strings.Join(parts, ", "))
}

func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalancedEntry
}

// Mapping kinds reported by MissingMappingError.
const (
	MappingCompany = "company"
	MappingAddress = "address"
)

// MissingMappingError reports a failed directory lookup during import mapping.
type MissingMappingError struct {
	Kind string
	Key  string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("no %s mapping for %q", e.Kind, e.Key)
}

func (e *MissingMappingError) Is(target error) bool {
	return target == ErrMissingMapping
}
