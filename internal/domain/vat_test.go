package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestVatRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total string
		vat   string
		want  string
	}{
		// 123 / 100 - 1 is exactly 0.23.
		{"standard swiss-style rate", "123", "23", "0.23"},
		{"reduced rate", "107.7", "7.7", "0.077"},
		{"truncated repeating fraction", "100", "7", "0.075"},
		// 81 / 80 - 1 = 0.0125: half away from zero rounds up where banker's would not.
		{"half rounds away from zero", "81", "1", "0.013"},
		{"negative credit note", "-81", "-1", "0.013"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VatRate(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.vat))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatalf("expected a rate, got nil")
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("VatRate(%s, %s) = %s, want %s", tt.total, tt.vat, got, tt.want)
			}
		})
	}
}

func TestVatRate_ZeroVatMeansNoRate(t *testing.T) {
	t.Parallel()

	for _, total := range []string{"0", "1", "123.45", "-50"} {
		got, err := VatRate(decimal.RequireFromString(total), decimal.Zero)
		if err != nil || got != nil {
			t.Fatalf("VatRate(%s, 0) = %v, %v; want nil, nil", total, got, err)
		}
	}
}

func TestVatRate_TotalEqualsVat(t *testing.T) {
	t.Parallel()

	got, err := VatRate(decimal.NewFromInt(23), decimal.NewFromInt(23))
	if !errors.Is(err, ErrDegenerateVat) {
		t.Fatalf("expected ErrDegenerateVat, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no rate, got %s", got)
	}
}
