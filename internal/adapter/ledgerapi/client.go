// Package ledgerapi is the typed client of the remote accounting service.
package ledgerapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/adapter/transport"
	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
)

// Endpoint paths.
const (
	PathAccountList          = "/accounting/account/list"
	PathAccountDetail        = "/accounting/account/detail"
	PathEntryInsert          = "/accounting/entry/insert"
	PathEntryUpdate          = "/accounting/entry/update"
	PathEntryDetail          = "/accounting/entry/detail"
	PathEntryDelete          = "/accounting/entry/delete"
	PathEntryAccountList     = "/accounting/entry/account/list"
	PathGroupInsert          = "/accounting/group/insert"
	PathGroupList            = "/accounting/group/list"
	PathBalanceGet           = "/accounting/balance/get"
	PathBalanceGetMulti      = "/accounting/balance/get/multi"
	PathBalanceCheck         = "/accounting/balance/check"
	PathLockInsert           = "/accounting/lock/insert"
	PathLockList             = "/accounting/lock/list"
	PathLockDelete           = "/accounting/lock/delete"
	PathCompanyList          = "/company/list"
	PathCompanyInsert        = "/company/insert"
	PathAddressList          = "/address/list"
	PathAddressInsert        = "/address/insert"
	PathPaymentProfileList   = "/payment-profile/list"
	PathPaymentProfileInsert = "/payment-profile/insert"
	PathInvoiceImport        = "/invoice/import"
)

// Client calls the remote service through a transport. It holds no mutable state; use
// WithEndpoint to address another instance.
type Client struct {
	sender   transport.Sender
	endpoint transport.Endpoint
}

var (
	_ usecase.AccountGateway = (*Client)(nil)
	_ usecase.EntryGateway   = (*Client)(nil)
	_ usecase.LockGateway    = (*Client)(nil)
	_ usecase.BalanceGateway = (*Client)(nil)
	_ usecase.CompanyGateway = (*Client)(nil)
	_ usecase.InvoiceGateway = (*Client)(nil)
)

// New creates a new Client.
func New(sender transport.Sender, endpoint transport.Endpoint) *Client {
	return &Client{sender: sender, endpoint: endpoint}
}

// WithEndpoint returns a copy of c that talks to endpoint.
func (c *Client) WithEndpoint(endpoint transport.Endpoint) *Client {
	return &Client{sender: c.sender, endpoint: endpoint}
}

// Endpoint returns the endpoint c talks to.
func (c *Client) Endpoint() transport.Endpoint {
	return c.endpoint
}

// call validates body, sends it and decodes the reply into a T.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	if body != nil {
		if err := dto.Validate(body); err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
	}

	resp, err := c.sender.Send(ctx, c.endpoint, transport.Request{Path: path, Method: method, Body: body})
	if err != nil {
		return out, mapError(err)
	}

	if err := resp.Decode(&out); err != nil {
		return out, fmt.Errorf("%s: decode response: %w", path, err)
	}
	return out, nil
}

// mapError keeps the transport error and adds the domain sentinel its status stands for.
func mapError(err error) error {
	var terr *transport.Error
	if !errors.As(err, &terr) {
		return err
	}

	switch terr.StatusCode {
	case http.StatusLocked:
		return fmt.Errorf("%w: %w", domain.ErrImmutableEntry, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	default:
		return err
	}
}

// ListAccounts returns the chart of accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := call[[]dto.AccountResponse](ctx, c, http.MethodPost, PathAccountList, dto.AccountListRequest{})
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(rows))
	for i, r := range rows {
		accounts[i] = r.ToDomain()
	}
	return accounts, nil
}

// GetAccount returns one account by id.
func (c *Client) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	row, err := call[dto.AccountResponse](ctx, c, http.MethodPost, PathAccountDetail, dto.IDRequest{ID: id})
	if err != nil {
		return nil, err
	}
	account := row.ToDomain()
	return &account, nil
}

// Directory returns the account number→id directory, read fresh from the service.
func (c *Client) Directory(ctx context.Context) (domain.AccountDirectory, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewAccountDirectory(accounts), nil
}

// InsertEntry posts a built entry and returns its id.
func (c *Client) InsertEntry(ctx context.Context, entry *domain.Entry) (int64, error) {
	resp, err := call[dto.EntryInsertResponse](ctx, c, http.MethodPost, PathEntryInsert, dto.EntryToPayload(entry))
	if err != nil {
		return 0, err
	}
	return resp.Entry.ID, nil
}

// UpdateEntry replaces the entry with id.
func (c *Client) UpdateEntry(ctx context.Context, id int64, entry *domain.Entry) error {
	_, err := call[dto.SuccessResponse](ctx, c, http.MethodPost, PathEntryUpdate, dto.EntryUpdateRequest{
		ID:   id,
		Data: dto.EntryToPayload(entry),
	})
	return err
}

// GetEntry returns the entry with id.
func (c *Client) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	payload, err := call[dto.EntryPayload](ctx, c, http.MethodPost, PathEntryDetail, dto.IDRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return payload.ToDomain()
}

// DeleteEntry deletes the entry with id.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	_, err := call[dto.SuccessResponse](ctx, c, http.MethodPost, PathEntryDelete, dto.IDRequest{ID: id})
	return err
}

// ListEntryAccounts returns the posted legs matching filter.
func (c *Client) ListEntryAccounts(ctx context.Context, filter domain.LegFilter) ([]domain.PostedLeg, error) {
	units, err := call[[]dto.EntryAccountListUnit](ctx, c, http.MethodPost, PathEntryAccountList, dto.EntryAccountListRequest{
		Filters: dto.EntryAccountFiltersFromDomain(filter),
	})
	if err != nil {
		return nil, err
	}
	return dto.PostedLegsToDomain(units)
}

// InsertEntryGroup creates an entry group and returns its id.
func (c *Client) InsertEntryGroup(ctx context.Context, description string) (int64, error) {
	resp, err := call[dto.IDResponse](ctx, c, http.MethodPost, PathGroupInsert, dto.EntryGroupPayload{Description: description})
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ListEntryGroups returns every entry group.
func (c *Client) ListEntryGroups(ctx context.Context) ([]domain.EntryGroup, error) {
	rows, err := call[[]dto.EntryGroupPayload](ctx, c, http.MethodGet, PathGroupList, nil)
	if err != nil {
		return nil, err
	}

	groups := make([]domain.EntryGroup, len(rows))
	for i, r := range rows {
		groups[i] = domain.EntryGroup{ID: r.ID, Description: r.Description}
	}
	return groups, nil
}

// Balances returns per-account balances over one window.
func (c *Client) Balances(ctx context.Context, query usecase.BalanceQuery) ([]domain.BalanceSnapshot, error) {
	rows, err := call[[]dto.BalanceResponse](ctx, c, http.MethodPost, PathBalanceGet, dto.BalanceRequest{
		StartDate: domain.FormatLedgerDate(query.Start),
		EndDate:   domain.FormatLedgerDate(query.End),
		Filters:   dto.BalanceFiltersToPayload(query.Filters),
	})
	if err != nil {
		return nil, err
	}
	return dto.BalancesToDomain(rows), nil
}

// BalancesMulti returns one balance set per end date.
func (c *Client) BalancesMulti(ctx context.Context, query usecase.BalanceMultiQuery) ([][]domain.BalanceSnapshot, error) {
	sets, err := call[[][]dto.BalanceResponse](ctx, c, http.MethodPost, PathBalanceGetMulti, dto.BalanceMultiRequest{
		StartDate: domain.FormatLedgerDate(query.Start),
		EndDates:  ledgerDates(query.EndDates),
		Filters:   dto.BalanceFiltersToPayload(query.Filters),
	})
	if err != nil {
		return nil, err
	}

	result := make([][]domain.BalanceSnapshot, len(sets))
	for i, rows := range sets {
		result[i] = dto.BalancesToDomain(rows)
	}
	return result, nil
}

// CheckBalance returns the ledger-wide integrity report.
func (c *Client) CheckBalance(ctx context.Context) (*usecase.BalanceCheck, error) {
	resp, err := call[dto.BalanceCheckResponse](ctx, c, http.MethodGet, PathBalanceCheck, nil)
	if err != nil {
		return nil, err
	}
	return &usecase.BalanceCheck{
		Total:             resp.Total,
		EntryCount:        resp.EntryCount,
		UnbalancedEntries: resp.UnbalancedEntries,
	}, nil
}

// LockEntry locks an entry and returns the lock uuid.
func (c *Client) LockEntry(ctx context.Context, entryID int64) (string, error) {
	resp, err := call[dto.UUIDResponse](ctx, c, http.MethodPost, PathLockInsert, dto.LockInsertRequest{EndEntry: dto.IDRef{ID: entryID}})
	if err != nil {
		return "", err
	}
	return resp.UUID, nil
}

// ListLocks returns every lock.
func (c *Client) ListLocks(ctx context.Context) ([]domain.Lock, error) {
	rows, err := call[[]dto.LockResponse](ctx, c, http.MethodGet, PathLockList, nil)
	if err != nil {
		return nil, err
	}

	locks := make([]domain.Lock, len(rows))
	for i, r := range rows {
		locks[i] = r.ToDomain()
	}
	return locks, nil
}

// DeleteLock deletes the lock with uuid.
func (c *Client) DeleteLock(ctx context.Context, uuid string) error {
	_, err := call[dto.SuccessResponse](ctx, c, http.MethodPost, PathLockDelete, dto.UUIDRequest{UUID: uuid})
	return err
}

// ListCompanies returns every company.
func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := call[[]dto.CompanyResponse](ctx, c, http.MethodGet, PathCompanyList, nil)
	if err != nil {
		return nil, err
	}

	companies := make([]domain.Company, len(rows))
	for i, r := range rows {
		companies[i] = domain.Company{UUID: r.UUID, Name: r.Name}
	}
	return companies, nil
}

// InsertCompany creates a company and returns its uuid.
func (c *Client) InsertCompany(ctx context.Context, name string) (string, error) {
	resp, err := call[dto.UUIDResponse](ctx, c, http.MethodPost, PathCompanyInsert, dto.CompanyInsertRequest{
		Data: dto.CompanyPayload{Name: name},
	})
	if err != nil {
		return "", err
	}
	return resp.UUID, nil
}

// ListAddresses returns the addresses of a company.
func (c *Client) ListAddresses(ctx context.Context, companyUUID string) ([]domain.Address, error) {
	rows, err := call[[]dto.AddressResponse](ctx, c, http.MethodPost, PathAddressList, dto.AddressListRequest{
		Company: dto.UUIDRef{UUID: companyUUID},
	})
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.Address, len(rows))
	for i, r := range rows {
		addresses[i] = r.ToDomain()
	}
	return addresses, nil
}

// InsertAddress creates an address for a company and returns its id.
func (c *Client) InsertAddress(ctx context.Context, companyUUID string, address domain.Address) (int64, error) {
	resp, err := call[dto.IDResponse](ctx, c, http.MethodPost, PathAddressInsert, dto.AddressInsertRequest{
		Data: dto.AddressPayload{
			Company: dto.UUIDRef{UUID: companyUUID},
			Street:  address.Street,
			City:    address.City,
			Zip:     address.Zip,
			Country: dto.IDRef{ID: int64(address.Country)},
		},
	})
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ListPaymentProfiles returns the payment profiles of a company.
func (c *Client) ListPaymentProfiles(ctx context.Context, companyUUID string) ([]domain.PaymentProfile, error) {
	rows, err := call[[]dto.PaymentProfilePayload](ctx, c, http.MethodPost, PathPaymentProfileList, dto.PaymentProfileListRequest{
		Filters: dto.PaymentProfileFilters{Company: dto.UUIDRef{UUID: companyUUID}},
	})
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.PaymentProfile, len(rows))
	for i, r := range rows {
		profiles[i] = r.ToDomain()
	}
	return profiles, nil
}

// InsertPaymentProfile creates a payment profile and returns its id.
func (c *Client) InsertPaymentProfile(ctx context.Context, profile domain.PaymentProfile) (int64, error) {
	resp, err := call[dto.IDResponse](ctx, c, http.MethodPost, PathPaymentProfileInsert, dto.PaymentProfileInsertRequest{
		Data: dto.PaymentProfileFromDomain(profile),
	})
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ImportInvoices posts mapped drafts and returns one acknowledgement per draft.
func (c *Client) ImportInvoices(ctx context.Context, drafts []domain.InvoiceDraft) ([]usecase.ImportedInvoice, error) {
	resp, err := call[dto.InvoiceImportResponse](ctx, c, http.MethodPost, PathInvoiceImport, dto.DraftsToPayload(drafts))
	if err != nil {
		return nil, err
	}

	imported := make([]usecase.ImportedInvoice, len(resp.Response))
	for i, r := range resp.Response {
		imported[i] = usecase.ImportedInvoice{UUID: r.UUID, Items: r.Items}
	}
	return imported, nil
}

func ledgerDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = domain.FormatLedgerDate(d)
	}
	return out
}
