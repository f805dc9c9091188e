package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MapImportRecord turns an import row into an invoice draft. Lookups never fall back to a
// placeholder: an unknown client or address fails with MissingMappingError.
func MapImportRecord(
	record InvoiceImport,
	companies CompanyDirectory,
	addresses AddressDirectory,
	profile PaymentProfileRef,
) (*InvoiceDraft, error) {
	companyUUID, ok := companies[record.Client.Name]
	if !ok {
		return nil, &MissingMappingError{Kind: MappingCompany, Key: record.Client.Name}
	}

	addressID, ok := addresses[companyUUID]
	if !ok {
		return nil, &MissingMappingError{Kind: MappingAddress, Key: companyUUID}
	}

	vatRate, err := VatRate(record.Total, record.Vat)
	if err != nil {
		return nil, fmt.Errorf("ref %d: %w", record.RefNumberInt, err)
	}

	return &InvoiceDraft{
		RefNumberInt:   record.RefNumberInt,
		Address:        addressID,
		PaymentProfile: profile,
		Items: []InvoiceItem{{
			Label:    importLabel(record),
			Quantity: decimal.NewFromInt(1),
			Rate:     record.Total,
			VatRate:  vatRate,
		}},
	}, nil
}

// MapImportRecords maps a batch. The first failing row aborts the batch.
func MapImportRecords(
	records []InvoiceImport,
	companies CompanyDirectory,
	addresses AddressDirectory,
	profile PaymentProfileRef,
) ([]InvoiceDraft, error) {
	drafts := make([]InvoiceDraft, 0, len(records))
	for i, record := range records {
		draft, err := MapImportRecord(record, companies, addresses, profile)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		drafts = append(drafts, *draft)
	}
	return drafts, nil
}

func importLabel(record InvoiceImport) string {
	return fmt.Sprintf("%s %s - %s", record.Project.ID, record.Project.Name, record.Type)
}
