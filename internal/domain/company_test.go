package domain

import (
	"errors"
	"testing"
)

func TestMatchCompany(t *testing.T) {
	t.Parallel()

	companies := []Company{
		{UUID: "a", Name: "Acme SA"},
		{UUID: "b", Name: "Globex AG"},
		{UUID: "c", Name: "Acme SA"},
	}

	t.Run("no match", func(t *testing.T) {
		_, found, err := MatchCompany(companies, "Initech", DuplicateFirstMatch)
		if err != nil || found {
			t.Fatalf("expected not found, got found=%v err=%v", found, err)
		}
	})

	t.Run("single match", func(t *testing.T) {
		c, found, err := MatchCompany(companies, "Globex AG", DuplicateReject)
		if err != nil || !found || c.UUID != "b" {
			t.Fatalf("expected b, got %+v found=%v err=%v", c, found, err)
		}
	})

	t.Run("duplicates resolve to first in list order", func(t *testing.T) {
		c, found, err := MatchCompany(companies, "Acme SA", DuplicateFirstMatch)
		if err != nil || !found || c.UUID != "a" {
			t.Fatalf("expected first match a, got %+v found=%v err=%v", c, found, err)
		}
	})

	t.Run("duplicates rejected as ambiguous", func(t *testing.T) {
		_, found, err := MatchCompany(companies, "Acme SA", DuplicateReject)
		if !errors.Is(err, ErrAmbiguousMatch) || found {
			t.Fatalf("expected ErrAmbiguousMatch, got found=%v err=%v", found, err)
		}

		var ambiguous *AmbiguousMatchError
		if !errors.As(err, &ambiguous) || len(ambiguous.Candidates) != 2 {
			t.Fatalf("expected two candidates, got %v", err)
		}
	})
}

func TestPaymentProfileSameRoute(t *testing.T) {
	t.Parallel()

	p := PaymentProfile{Account: AccountRef{ID: 10}, IBAN: "CH93 0076 2011 6238 5295 7", Type: 1}

	if !p.SameRoute(PaymentProfile{ID: 99, Account: AccountRef{ID: 10}, IBAN: p.IBAN, Type: 1}) {
		t.Fatalf("expected same route regardless of id")
	}
	if p.SameRoute(PaymentProfile{Account: AccountRef{ID: 10}, IBAN: p.IBAN, Type: 2}) {
		t.Fatalf("expected different type to be a different route")
	}
}
