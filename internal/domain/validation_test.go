package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	t.Run("valid description", func(t *testing.T) {
		if err := ValidateDescription("rent april"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("blank description rejected", func(t *testing.T) {
		if err := ValidateDescription("   "); !errors.Is(err, ErrInvalidDescription) {
			t.Fatalf("expected ErrInvalidDescription, got %v", err)
		}
	})

	t.Run("too long description rejected", func(t *testing.T) {
		long := strings.Repeat("a", MaxDescriptionLength+1)
		if err := ValidateDescription(long); !errors.Is(err, ErrInvalidDescription) {
			t.Fatalf("expected ErrInvalidDescription, got %v", err)
		}
	})
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"", "CHF", "eur", " usd "} {
		if err := ValidateCurrency(c); err != nil {
			t.Fatalf("expected %q to be valid, got %v", c, err)
		}
	}

	for _, c := range []string{"XXX", "EURO", "1"} {
		if err := ValidateCurrency(c); !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency for %q, got %v", c, err)
		}
	}
}

func TestParseLedgerDate(t *testing.T) {
	t.Parallel()

	got, err := ParseLedgerDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected UTC midnight, got %s", got)
	}
	if FormatLedgerDate(got) != "2024-02-29" {
		t.Fatalf("expected round trip, got %s", FormatLedgerDate(got))
	}

	for _, bad := range []string{"", "2023-02-29", "29.02.2024", "2024-02-29T10:00:00Z"} {
		if _, err := ParseLedgerDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

func TestFormatLedgerDate_UsesUTC(t *testing.T) {
	t.Parallel()

	zurich := time.FixedZone("CET", 3600)
	late := time.Date(2024, 1, 1, 0, 30, 0, 0, zurich)
	if got := FormatLedgerDate(late); got != "2023-12-31" {
		t.Fatalf("expected UTC calendar day, got %s", got)
	}
}
