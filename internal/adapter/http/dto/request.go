package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
)

// IDRef references a record by numeric id.
type IDRef struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// UUIDRef references a record by uuid.
type UUIDRef struct {
	UUID string `json:"uuid" validate:"required"`
}

// IDsRef selects several records by id.
type IDsRef struct {
	IDs []int64 `json:"ids" validate:"dive,gt=0"`
}

// IDRequest is the body of detail and delete calls keyed by id.
type IDRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// UUIDRequest is the body of calls keyed by uuid.
type UUIDRequest struct {
	UUID string `json:"uuid" validate:"required"`
}

// AccountListRequest filters the chart of accounts.
type AccountListRequest struct {
	Filters *AccountFilters `json:"filters,omitempty"`
}

// AccountFilters narrows an account list.
type AccountFilters struct {
	FunctionType *IDRef `json:"functionType,omitempty"`
}

// EntryAccountPayload is one leg of an entry on the wire.
type EntryAccountPayload struct {
	ID                int64            `json:"id,omitempty"`
	Account           IDRef            `json:"account"`
	Amount            decimal.Decimal  `json:"amount"                      validate:"dec_gt0"`
	Direction         int8             `json:"direction"                   validate:"oneof=1 -1"`
	Currency          string           `json:"currency,omitempty"          validate:"omitempty,len=3,uppercase"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate,omitempty"      validate:"omitempty,dec_gt0"`
	Company           *UUIDRef         `json:"company,omitempty"`
	Invoice           *UUIDRef         `json:"invoice,omitempty"`
	Payable           *UUIDRef         `json:"payable,omitempty"`
	TransactionGroup  *IDRef           `json:"transactionGroup,omitempty"`
	ExternalReference string           `json:"externalReference,omitempty"`
}

// EntryPayload is an entry on the wire, as inserted and as returned by detail.
type EntryPayload struct {
	ID            int64                 `json:"id,omitempty"`
	Description   string                `json:"description"          validate:"required,max=512"`
	DateLedger    string                `json:"dateLedger"           validate:"required,datetime=2006-01-02"`
	EntryGroup    *EntryGroupPayload    `json:"entryGroup,omitempty"`
	Number        *int64                `json:"number,omitempty"`
	EntryAccounts []EntryAccountPayload `json:"entryAccounts"        validate:"min=2,dive"`
}

// EntryUpdateRequest replaces the stored entry with id.
type EntryUpdateRequest struct {
	ID   int64        `json:"id"   validate:"gt=0"`
	Data EntryPayload `json:"data"`
}

// EntryGroupPayload is an entry group on the wire.
type EntryGroupPayload struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description" validate:"required"`
}

// EntryAccountListRequest lists legs.
type EntryAccountListRequest struct {
	Filters EntryAccountFilters `json:"filters"`
}

// EntryAccountFilters narrows a leg list. Dates are inclusive.
type EntryAccountFilters struct {
	Account   *IDRef `json:"account,omitempty"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty"   validate:"omitempty,datetime=2006-01-02"`
}

// BalanceFiltersPayload mirrors domain.BalanceFilters.
type BalanceFiltersPayload struct {
	Accounts              *IDsRef `json:"accounts,omitempty"`
	OnlyNonZero           bool    `json:"onlyNonZero,omitempty"`
	OnlyWithAtLeastOneTx  bool    `json:"onlyWithAtLeastOneTx,omitempty"`
	ExcludeTransactionIDs []int64 `json:"excludeTransactionIds,omitempty"`
	ExcludeGroupIDs       []int64 `json:"excludeGroupIds,omitempty"`
}

// BalanceRequest asks for balances over [StartDate, EndDate].
type BalanceRequest struct {
	StartDate string                `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string                `json:"endDate"   validate:"required,datetime=2006-01-02"`
	Filters   BalanceFiltersPayload `json:"filters"`
}

// BalanceMultiRequest asks for one balance set per end date.
type BalanceMultiRequest struct {
	StartDate string                `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDates  []string              `json:"endDates"  validate:"min=1,dive,datetime=2006-01-02"`
	Filters   BalanceFiltersPayload `json:"filters"`
}

// LockInsertRequest locks the given entry.
type LockInsertRequest struct {
	EndEntry IDRef `json:"endEntry"`
}

// CompanyPayload is the insertable part of a company.
type CompanyPayload struct {
	Name string `json:"name" validate:"required"`
}

// CompanyInsertRequest creates a company.
type CompanyInsertRequest struct {
	Data CompanyPayload `json:"data"`
}

// AddressListRequest lists the addresses of a company.
type AddressListRequest struct {
	Company UUIDRef `json:"company"`
}

// AddressPayload is the insertable part of an address.
type AddressPayload struct {
	Company UUIDRef `json:"company"`
	Street  string  `json:"street"  validate:"required"`
	City    string  `json:"city"    validate:"required"`
	Zip     string  `json:"zip"     validate:"required"`
	Country IDRef   `json:"country"`
}

// AddressInsertRequest creates an address.
type AddressInsertRequest struct {
	Data AddressPayload `json:"data"`
}

// PaymentProfileListRequest lists the payment profiles of a company.
type PaymentProfileListRequest struct {
	Filters PaymentProfileFilters `json:"filters"`
}

// PaymentProfileFilters narrows a payment profile list.
type PaymentProfileFilters struct {
	Company UUIDRef `json:"company"`
}

// PaymentProfilePayload is a payment profile on the wire.
type PaymentProfilePayload struct {
	ID      int64   `json:"id,omitempty"`
	Company UUIDRef `json:"company"`
	Account IDRef   `json:"account"`
	IBAN    string  `json:"iban"    validate:"omitempty,alphanum,max=34"`
	Type    int     `json:"type"    validate:"gte=0"`
}

// PaymentProfileInsertRequest creates a payment profile.
type PaymentProfileInsertRequest struct {
	Data PaymentProfilePayload `json:"data"`
}

// InvoiceItemPayload is one invoice line on the wire.
type InvoiceItemPayload struct {
	Label    string           `json:"label"             validate:"required"`
	Quantity decimal.Decimal  `json:"quantity"          validate:"dec_gt0"`
	Rate     decimal.Decimal  `json:"rate"`
	VatRate  *decimal.Decimal `json:"vatRate,omitempty"`
}

// InvoiceDraftPayload is one mapped import row on the wire.
type InvoiceDraftPayload struct {
	RefNumberInt   int64                `json:"refNumberInt"`
	Address        IDRef                `json:"address"`
	PaymentProfile IDRef                `json:"paymentProfile"`
	Items          []InvoiceItemPayload `json:"items"          validate:"min=1,dive"`
}

// InvoiceImportRequest imports a batch of drafts.
type InvoiceImportRequest struct {
	Data []InvoiceDraftPayload `json:"data" validate:"min=1,dive"`
}

// EntryToPayload converts a domain entry to its wire form.
func EntryToPayload(e *domain.Entry) EntryPayload {
	p := EntryPayload{
		ID:            e.ID,
		Description:   e.Description,
		DateLedger:    domain.FormatLedgerDate(e.DateLedger),
		Number:        e.Number,
		EntryAccounts: make([]EntryAccountPayload, len(e.Legs)),
	}
	if e.Group != nil {
		p.EntryGroup = &EntryGroupPayload{ID: e.Group.ID, Description: e.Group.Description}
	}
	for i, leg := range e.Legs {
		p.EntryAccounts[i] = legToPayload(leg)
	}
	return p
}

func legToPayload(leg domain.EntryAccount) EntryAccountPayload {
	p := EntryAccountPayload{
		ID:           leg.ID,
		Account:      IDRef{ID: leg.Account.ID},
		Amount:       leg.Amount,
		Direction:    int8(leg.Direction),
		Currency:     leg.Currency,
		ExchangeRate: leg.ExchangeRate,
	}
	if l := leg.Links; l != nil {
		p.Company = uuidRef(l.CompanyUUID)
		p.Invoice = uuidRef(l.InvoiceUUID)
		p.Payable = uuidRef(l.PayableUUID)
		if l.TransactionGroupID != nil {
			p.TransactionGroup = &IDRef{ID: *l.TransactionGroupID}
		}
		p.ExternalReference = l.ExternalReference
	}
	return p
}

// ToDomain converts the wire form back to a domain entry.
func (p EntryPayload) ToDomain() (*domain.Entry, error) {
	date, err := domain.ParseLedgerDate(p.DateLedger)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		ID:          p.ID,
		Description: p.Description,
		DateLedger:  date,
		Number:      p.Number,
		Legs:        make([]domain.EntryAccount, len(p.EntryAccounts)),
	}
	if p.EntryGroup != nil {
		e.Group = &domain.EntryGroup{ID: p.EntryGroup.ID, Description: p.EntryGroup.Description}
	}
	for i, leg := range p.EntryAccounts {
		e.Legs[i] = leg.toDomain()
	}
	return e, nil
}

func (p EntryAccountPayload) toDomain() domain.EntryAccount {
	leg := domain.EntryAccount{
		ID:           p.ID,
		Account:      domain.AccountRef{ID: p.Account.ID},
		Amount:       p.Amount,
		Direction:    domain.Direction(p.Direction),
		Currency:     p.Currency,
		ExchangeRate: p.ExchangeRate,
	}
	if p.Company != nil || p.Invoice != nil || p.Payable != nil || p.TransactionGroup != nil || p.ExternalReference != "" {
		links := &domain.EntryLinks{
			CompanyUUID:       uuidOf(p.Company),
			InvoiceUUID:       uuidOf(p.Invoice),
			PayableUUID:       uuidOf(p.Payable),
			ExternalReference: p.ExternalReference,
		}
		if p.TransactionGroup != nil {
			id := p.TransactionGroup.ID
			links.TransactionGroupID = &id
		}
		leg.Links = links
	}
	return leg
}

// BalanceFiltersToPayload converts domain filters to their wire form.
func BalanceFiltersToPayload(f domain.BalanceFilters) BalanceFiltersPayload {
	p := BalanceFiltersPayload{
		OnlyNonZero:           f.OnlyNonZero,
		OnlyWithAtLeastOneTx:  f.OnlyWithAtLeastOneTx,
		ExcludeTransactionIDs: f.ExcludeTransactionIDs,
		ExcludeGroupIDs:       f.ExcludeGroupIDs,
	}
	if len(f.AccountIDs) > 0 {
		p.Accounts = &IDsRef{IDs: f.AccountIDs}
	}
	return p
}

// ToDomain converts wire filters to domain filters.
func (p BalanceFiltersPayload) ToDomain() domain.BalanceFilters {
	f := domain.BalanceFilters{
		OnlyNonZero:           p.OnlyNonZero,
		OnlyWithAtLeastOneTx:  p.OnlyWithAtLeastOneTx,
		ExcludeTransactionIDs: p.ExcludeTransactionIDs,
		ExcludeGroupIDs:       p.ExcludeGroupIDs,
	}
	if p.Accounts != nil {
		f.AccountIDs = p.Accounts.IDs
	}
	return f
}

// Window parses the request window.
func (r BalanceRequest) Window() (time.Time, time.Time, error) {
	start, ends, err := parseWindow(r.StartDate, []string{r.EndDate})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, ends[0], nil
}

// Window parses the start and every end date.
func (r BalanceMultiRequest) Window() (time.Time, []time.Time, error) {
	return parseWindow(r.StartDate, r.EndDates)
}

func parseWindow(rawStart string, rawEnds []string) (time.Time, []time.Time, error) {
	start, err := domain.ParseLedgerDate(rawStart)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("startDate: %w", err)
	}
	ends := make([]time.Time, len(rawEnds))
	for i, raw := range rawEnds {
		if ends[i], err = domain.ParseLedgerDate(raw); err != nil {
			return time.Time{}, nil, fmt.Errorf("endDates[%d]: %w", i, err)
		}
	}
	return start, ends, nil
}

// DraftsToPayload converts invoice drafts to their wire form.
func DraftsToPayload(drafts []domain.InvoiceDraft) InvoiceImportRequest {
	req := InvoiceImportRequest{Data: make([]InvoiceDraftPayload, len(drafts))}
	for i, d := range drafts {
		items := make([]InvoiceItemPayload, len(d.Items))
		for j, it := range d.Items {
			items[j] = InvoiceItemPayload{Label: it.Label, Quantity: it.Quantity, Rate: it.Rate, VatRate: it.VatRate}
		}
		req.Data[i] = InvoiceDraftPayload{
			RefNumberInt:   d.RefNumberInt,
			Address:        IDRef{ID: d.Address},
			PaymentProfile: IDRef{ID: d.PaymentProfile.ID},
			Items:          items,
		}
	}
	return req
}

// ToDomain converts wire drafts to domain drafts.
func (r InvoiceImportRequest) ToDomain() []domain.InvoiceDraft {
	drafts := make([]domain.InvoiceDraft, len(r.Data))
	for i, d := range r.Data {
		items := make([]domain.InvoiceItem, len(d.Items))
		for j, it := range d.Items {
			items[j] = domain.InvoiceItem{Label: it.Label, Quantity: it.Quantity, Rate: it.Rate, VatRate: it.VatRate}
		}
		drafts[i] = domain.InvoiceDraft{
			RefNumberInt:   d.RefNumberInt,
			Address:        d.Address.ID,
			PaymentProfile: domain.PaymentProfileRef{ID: d.PaymentProfile.ID},
			Items:          items,
		}
	}
	return drafts
}

func uuidRef(uuid string) *UUIDRef {
	if uuid == "" {
		return nil
	}
	return &UUIDRef{UUID: uuid}
}

func uuidOf(ref *UUIDRef) string {
	if ref == nil {
		return ""
	}
	return ref.UUID
}

// EntryAccountFiltersFromDomain converts a leg filter to its wire form.
func EntryAccountFiltersFromDomain(f domain.LegFilter) EntryAccountFilters {
	p := EntryAccountFilters{}
	if f.AccountID != 0 {
		p.Account = &IDRef{ID: f.AccountID}
	}
	if !f.Start.IsZero() {
		p.StartDate = domain.FormatLedgerDate(f.Start)
	}
	if !f.End.IsZero() {
		p.EndDate = domain.FormatLedgerDate(f.End)
	}
	return p
}

// ToDomain converts wire filters to a leg filter.
func (p EntryAccountFilters) ToDomain() (domain.LegFilter, error) {
	var (
		f   domain.LegFilter
		err error
	)
	if p.Account != nil {
		f.AccountID = p.Account.ID
	}
	if p.StartDate != "" {
		if f.Start, err = domain.ParseLedgerDate(p.StartDate); err != nil {
			return f, fmt.Errorf("startDate: %w", err)
		}
	}
	if p.EndDate != "" {
		if f.End, err = domain.ParseLedgerDate(p.EndDate); err != nil {
			return f, fmt.Errorf("endDate: %w", err)
		}
	}
	return f, nil
}
