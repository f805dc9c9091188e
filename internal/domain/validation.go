package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors
var (
	ErrInvalidDescription = errors.New("invalid entry description")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidDate        = errors.New("invalid ledger date")
)

// Validation constants
const (
	MaxDescriptionLength = 512
	LedgerDateLayout     = time.DateOnly
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"CHF": true, "EUR": true, "USD": true, "GBP": true,
	"JPY": true, "CNY": true, "AUD": true, "CAD": true,
	"SEK": true, "NOK": true, "DKK": true, "PLN": true,
	"CZK": true, "HUF": true, "NZD": true, "SGD": true,
	"HKD": true, "INR": true, "BRL": true, "ZAR": true,
}

// ValidateDescription validates an entry description
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateCurrency validates currency code. Empty means base currency.
func ValidateCurrency(currency string) error {
	if currency == "" {
		return nil
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ParseLedgerDate parses a YYYY-MM-DD ledger date as UTC midnight.
func ParseLedgerDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LedgerDateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatLedgerDate formats t as YYYY-MM-DD.
func FormatLedgerDate(t time.Time) string {
	return t.UTC().Format(LedgerDateLayout)
}
