package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/iho/ledgerclient/internal/adapter/http"
	"github.com/iho/ledgerclient/internal/adapter/ledgerapi"
	"github.com/iho/ledgerclient/internal/adapter/repository/memory"
	"github.com/iho/ledgerclient/internal/adapter/transport"
	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/testutil"
	"github.com/iho/ledgerclient/internal/usecase"
	"github.com/iho/ledgerclient/internal/usecase/mocks"
)

type emulator struct {
	store  *memory.Store
	client *ledgerapi.Client
}

func startEmulator(t *testing.T) *emulator {
	t.Helper()

	store := memory.NewStore(testutil.Accounts()...)
	server := httptest.NewServer(apihttp.NewStoreRouter(store, zerolog.Nop(), 0, prometheus.NewRegistry()))
	t.Cleanup(server.Close)

	tr := transport.NewHTTPTransport(server.Client(), zerolog.Nop(), nil)
	return &emulator{
		store:  store,
		client: ledgerapi.New(tr, transport.Endpoint{BaseURL: server.URL, Token: "test"}),
	}
}

// seedFixture posts the fixture ledger. Group ids are assigned by the store.
func (e *emulator) seedFixture(t *testing.T) {
	t.Helper()
	for _, entry := range testutil.Entries() {
		if entry.Group != nil {
			entry.Group = &domain.EntryGroup{Description: entry.Group.Description}
		}
		_, err := e.client.InsertEntry(context.Background(), &entry)
		require.NoError(t, err)
	}
}

func rentInput() usecase.EntryInput {
	return usecase.EntryInput{
		Description: "rent april",
		DateLedger:  testutil.Date("2024-04-01"),
		Legs: []domain.RawLeg{
			{AccountNumber: 6000, Amount: decimal.NewFromInt(-2000)},
			{AccountNumber: 1020, Amount: decimal.NewFromInt(2000)},
		},
	}
}

func TestEmulator_RecordAndReadBack(t *testing.T) {
	emu := startEmulator(t)
	ctx := context.Background()

	accounts := usecase.NewAccountUseCase(emu.client, nil, 0, zerolog.Nop())
	entries := usecase.NewEntryUseCase(accounts, emu.client, emu.client, nil, zerolog.Nop())

	recorded, err := entries.Record(ctx, rentInput())
	require.NoError(t, err)
	require.NotZero(t, recorded.ID)

	got, err := entries.Get(ctx, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, "rent april", got.Description)
	assert.True(t, got.DateLedger.Equal(testutil.Date("2024-04-01")))
	require.Len(t, got.Legs, 2)
	assert.Equal(t, testutil.AccountRent, got.Legs[0].Account.ID)
	assert.Equal(t, domain.Debit, got.Legs[0].Direction)
	assert.Equal(t, domain.Credit, got.Legs[1].Direction)

	legs, err := emu.client.ListEntryAccounts(ctx, domain.LegFilter{AccountID: testutil.AccountBank})
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, recorded.ID, legs[0].EntryID)
}

func TestEmulator_LockedEntryIsImmutable(t *testing.T) {
	emu := startEmulator(t)
	ctx := context.Background()

	accounts := usecase.NewAccountUseCase(emu.client, nil, 0, zerolog.Nop())
	entries := usecase.NewEntryUseCase(accounts, emu.client, emu.client, nil, zerolog.Nop())

	recorded, err := entries.Record(ctx, rentInput())
	require.NoError(t, err)

	lockUUID, err := entries.Lock(ctx, recorded.ID)
	require.NoError(t, err)
	require.NotEmpty(t, lockUUID)

	// The use case refuses before sending.
	_, err = entries.Update(ctx, recorded.ID, rentInput())
	require.ErrorIs(t, err, domain.ErrImmutableEntry)

	// The store refuses with 423 when asked directly.
	err = emu.client.UpdateEntry(ctx, recorded.ID, recorded)
	require.ErrorIs(t, err, domain.ErrImmutableEntry)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusLocked, terr.StatusCode)

	err = emu.client.DeleteEntry(ctx, recorded.ID)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusLocked, terr.StatusCode)

	require.NoError(t, entries.Unlock(ctx, lockUUID))

	updated, err := entries.Update(ctx, recorded.ID, rentInput())
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, updated.ID)
	require.NoError(t, entries.Delete(ctx, recorded.ID))

	_, err = entries.Get(ctx, recorded.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmulator_UnbalancedEntryRejected(t *testing.T) {
	emu := startEmulator(t)

	entry := &domain.Entry{
		Description: "lopsided",
		DateLedger:  testutil.Date("2024-04-02"),
		Legs: []domain.EntryAccount{
			{Account: domain.AccountRef{ID: testutil.AccountRent}, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{Account: domain.AccountRef{ID: testutil.AccountBank}, Amount: decimal.NewFromInt(90), Direction: domain.Credit},
		},
	}

	_, err := emu.client.InsertEntry(context.Background(), entry)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusBadRequest, terr.StatusCode)
}

func TestEmulator_BalancesMatchLocalComputation(t *testing.T) {
	emu := startEmulator(t)
	emu.seedFixture(t)
	ctx := context.Background()

	start := testutil.Date("2024-01-01")
	ends := []time.Time{testutil.Date("2024-01-31"), testutil.Date("2024-02-29"), testutil.Date("2024-03-31")}
	query := usecase.BalanceMultiQuery{Start: start, EndDates: ends, Filters: domain.BalanceFilters{OnlyWithAtLeastOneTx: true}}

	balances := usecase.NewBalanceUseCase(emu.client)
	sets, err := balances.CrossCheckMulti(ctx, query)
	require.NoError(t, err)
	require.Len(t, sets, 3)

	for i, set := range sets {
		testutil.AssertSnapshotsConsistent(t, testutil.Entries(), set, start, ends[i], query.Filters)
	}

	metrics := mocks.NewMockMetrics()
	reconciler := usecase.NewReconciliationUseCase(emu.client, metrics, zerolog.Nop())
	report, err := reconciler.Reconcile(ctx, testutil.Accounts(), testutil.Entries(), query.Single(2))
	require.NoError(t, err)
	assert.True(t, report.IsReconciled())
	assert.Equal(t, 1, metrics.Verified[true])
}

func TestEmulator_ConsistencyCheck(t *testing.T) {
	emu := startEmulator(t)
	emu.seedFixture(t)

	check, err := usecase.NewLedgerUseCase(emu.client).CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, check.Total.IsZero(), "total %s", check.Total)
	assert.Equal(t, len(testutil.Entries()), check.EntryCount)
}

func TestEmulator_FindOrCreateAndImport(t *testing.T) {
	emu := startEmulator(t)
	ctx := context.Background()

	companies := usecase.NewCompanyUseCase(emu.client, domain.DuplicateReject, zerolog.Nop())
	route := domain.PaymentProfile{Account: domain.AccountRef{ID: testutil.AccountBank}, IBAN: "CH9300762011623852957", Type: 1}

	first, err := companies.FindOrCreate(ctx, "Acme AG", route)
	require.NoError(t, err)
	assert.True(t, first.CompanyCreated)
	assert.True(t, first.ProfileCreated)

	again, err := companies.FindOrCreate(ctx, "Acme AG", route)
	require.NoError(t, err)
	assert.False(t, again.CompanyCreated)
	assert.False(t, again.ProfileCreated)
	assert.Equal(t, first.PaymentProfile.ID, again.PaymentProfile.ID)

	addressID, err := emu.client.InsertAddress(ctx, first.Company.UUID, domain.Address{
		Street: "Bahnhofstrasse 1", City: "Zürich", Zip: "8001", Country: domain.CountrySwitzerland,
	})
	require.NoError(t, err)

	importer := usecase.NewImportUseCase(emu.client, nil, zerolog.Nop())
	imported, err := importer.Import(ctx, []domain.InvoiceImport{{
		RefNumberInt: 2024017,
		Client:       domain.ImportClient{Name: "Acme AG"},
		Project:      domain.ImportProject{ID: "P-7", Name: "Website"},
		Type:         "hours",
		Total:        decimal.RequireFromString("1077"),
		Vat:          decimal.RequireFromString("77"),
	}}, usecase.ImportDirectories{
		Companies: domain.CompanyDirectory{"Acme AG": first.Company.UUID},
		Addresses: domain.AddressDirectory{first.Company.UUID: addressID},
	}, domain.PaymentProfileRef{ID: first.PaymentProfile.ID})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, 1, imported[0].Items)

	stored := emu.store.Invoices()
	require.Len(t, stored, 1)
	assert.Equal(t, "P-7 Website - hours", stored[0].Draft.Items[0].Label)
	assert.Equal(t, "0.077", stored[0].Draft.Items[0].VatRate.String())
}

func TestEmulator_ImportUnknownProfileFails(t *testing.T) {
	emu := startEmulator(t)

	_, err := emu.client.ImportInvoices(context.Background(), []domain.InvoiceDraft{{
		RefNumberInt:   1,
		Address:        99,
		PaymentProfile: domain.PaymentProfileRef{ID: 99},
		Items:          []domain.InvoiceItem{{Label: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
	}})
	require.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	assert.Empty(t, emu.store.Invoices())
}
