package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importFixture() (InvoiceImport, CompanyDirectory, AddressDirectory, PaymentProfileRef) {
	record := InvoiceImport{
		RefNumberInt: 2024017,
		Client:       ImportClient{Name: "Acme SA"},
		Project:      ImportProject{ID: "P-12", Name: "Website"},
		Type:         "development",
		Total:        decimal.NewFromInt(1077),
		Vat:          decimal.NewFromInt(77),
	}
	companies := CompanyDirectory{"Acme SA": "7d9826c7-077f-11ee-859f-42010aac0014"}
	addresses := AddressDirectory{"7d9826c7-077f-11ee-859f-42010aac0014": 451}
	return record, companies, addresses, PaymentProfileRef{ID: 3}
}

func TestMapImportRecord(t *testing.T) {
	t.Parallel()

	record, companies, addresses, profile := importFixture()

	draft, err := MapImportRecord(record, companies, addresses, profile)
	require.NoError(t, err)

	assert.Equal(t, int64(2024017), draft.RefNumberInt)
	assert.Equal(t, int64(451), draft.Address)
	assert.Equal(t, PaymentProfileRef{ID: 3}, draft.PaymentProfile)
	require.Len(t, draft.Items, 1)

	item := draft.Items[0]
	assert.Equal(t, "P-12 Website - development", item.Label)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.Rate.Equal(decimal.NewFromInt(1077)))
	require.NotNil(t, item.VatRate)
	assert.Equal(t, "0.077", item.VatRate.String())
}

func TestMapImportRecord_NoVat(t *testing.T) {
	t.Parallel()

	record, companies, addresses, profile := importFixture()
	record.Vat = decimal.Zero

	draft, err := MapImportRecord(record, companies, addresses, profile)
	require.NoError(t, err)
	assert.Nil(t, draft.Items[0].VatRate)
}

func TestMapImportRecord_MissingMappings(t *testing.T) {
	t.Parallel()

	t.Run("unknown client", func(t *testing.T) {
		record, companies, addresses, profile := importFixture()
		record.Client.Name = "Unknown GmbH"

		draft, err := MapImportRecord(record, companies, addresses, profile)
		assert.Nil(t, draft)
		require.ErrorIs(t, err, ErrMissingMapping)

		var missing *MissingMappingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, MappingCompany, missing.Kind)
		assert.Equal(t, "Unknown GmbH", missing.Key)
	})

	t.Run("company without address", func(t *testing.T) {
		record, companies, _, profile := importFixture()

		draft, err := MapImportRecord(record, companies, AddressDirectory{}, profile)
		assert.Nil(t, draft)

		var missing *MissingMappingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, MappingAddress, missing.Kind)
	})
}

func TestMapImportRecord_DegenerateVatPropagates(t *testing.T) {
	t.Parallel()

	record, companies, addresses, profile := importFixture()
	record.Vat = record.Total

	_, err := MapImportRecord(record, companies, addresses, profile)
	assert.True(t, errors.Is(err, ErrDegenerateVat), "got %v", err)
}

func TestMapImportRecords_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	record, companies, addresses, profile := importFixture()
	bad := record
	bad.Client.Name = "nobody"

	drafts, err := MapImportRecords([]InvoiceImport{record, bad, record}, companies, addresses, profile)
	require.ErrorIs(t, err, ErrMissingMapping)
	assert.Contains(t, err.Error(), "row 1")
	assert.Nil(t, drafts)

	drafts, err = MapImportRecords([]InvoiceImport{record, record}, companies, addresses, profile)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}
