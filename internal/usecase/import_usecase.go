package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
)

// ImportDirectories bundles the lookups an import batch is mapped with.
type ImportDirectories struct {
	Companies domain.CompanyDirectory
	Addresses domain.AddressDirectory
}

// ImportUseCase maps external invoice rows and sends them to the invoice import endpoint.
type ImportUseCase struct {
	invoices InvoiceGateway
	metrics  Metrics
	logger   zerolog.Logger
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(invoices InvoiceGateway, metrics Metrics, logger zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{
		invoices: invoices,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

// Import maps every record and posts the batch. Nothing is sent when any row fails to
// map.
func (uc *ImportUseCase) Import(
	ctx context.Context,
	records []domain.InvoiceImport,
	dirs ImportDirectories,
	profile domain.PaymentProfileRef,
) ([]ImportedInvoice, error) {
	drafts, err := domain.MapImportRecords(records, dirs.Companies, dirs.Addresses, profile)
	if err != nil {
		return nil, err
	}

	if len(drafts) == 0 {
		return nil, nil
	}

	imported, err := uc.invoices.ImportInvoices(ctx, drafts)
	if err != nil {
		return nil, err
	}

	uc.metrics.InvoicesImported(len(imported))
	uc.logger.Info().Int("invoices", len(imported)).Msg("invoices imported")

	return imported, nil
}
