package domain

import "github.com/shopspring/decimal"

// VatRatePlaces is the precision of derived VAT rates.
const VatRatePlaces = 3

var one = decimal.NewFromInt(1)

// VatRate derives the tax rate implied by a gross total and its tax amount:
// total / (total - vat) - 1, rounded half away from zero to VatRatePlaces.
// A zero vat means no VAT applies and yields nil.
func VatRate(total, vat decimal.Decimal) (*decimal.Decimal, error) {
	if vat.IsZero() {
		return nil, nil
	}

	net := total.Sub(vat)
	if net.IsZero() {
		return nil, ErrDegenerateVat
	}

	rate := total.Div(net).Sub(one).Round(VatRatePlaces)
	return &rate, nil
}
