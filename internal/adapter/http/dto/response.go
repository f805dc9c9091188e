package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           int64  `json:"id"`
	Number       int64  `json:"number"`
	Name         string `json:"name"`
	Currency     string `json:"currency,omitempty"`
	Type         int    `json:"type"`
	FunctionType *IDRef `json:"functionType,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:       a.ID,
		Number:   a.Number,
		Name:     a.Name,
		Currency: a.Currency,
		Type:     int(a.Type),
	}
	if a.FunctionType != nil {
		resp.FunctionType = &IDRef{ID: int64(*a.FunctionType)}
	}
	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []domain.Account) []AccountResponse {
	result := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ToDomain converts the response back to a domain account.
func (r AccountResponse) ToDomain() domain.Account {
	a := domain.Account{
		ID:       r.ID,
		Number:   r.Number,
		Name:     r.Name,
		Currency: r.Currency,
		Type:     domain.AccountType(r.Type),
	}
	if r.FunctionType != nil {
		ft := domain.AccountFunctionType(r.FunctionType.ID)
		a.FunctionType = &ft
	}
	return a
}

// IDResponse acknowledges an insert keyed by id.
type IDResponse struct {
	ID int64 `json:"id"`
}

// UUIDResponse acknowledges an insert keyed by uuid.
type UUIDResponse struct {
	UUID string `json:"uuid"`
}

// EntryInsertResponse acknowledges an entry insert.
type EntryInsertResponse struct {
	Entry IDRef `json:"entry"`
}

// SuccessResponse acknowledges an update or delete.
type SuccessResponse struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
}

// EntryAccountListUnit is one posted leg in a leg listing.
type EntryAccountListUnit struct {
	EntryAccountPayload
	Entry EntryRefPayload `json:"entry"`
}

// EntryRefPayload summarizes the entry a leg belongs to.
type EntryRefPayload struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	DateLedger  string `json:"dateLedger"`
}

// PostedLegsFromDomain converts posted legs to list units.
func PostedLegsFromDomain(legs []domain.PostedLeg) []EntryAccountListUnit {
	result := make([]EntryAccountListUnit, len(legs))
	for i, l := range legs {
		result[i] = EntryAccountListUnit{
			EntryAccountPayload: legToPayload(l.Leg),
			Entry: EntryRefPayload{
				ID:          l.EntryID,
				Description: l.Description,
				DateLedger:  domain.FormatLedgerDate(l.DateLedger),
			},
		}
	}
	return result
}

// PostedLegsToDomain converts list units back to posted legs.
func PostedLegsToDomain(units []EntryAccountListUnit) ([]domain.PostedLeg, error) {
	result := make([]domain.PostedLeg, len(units))
	for i, u := range units {
		date, err := domain.ParseLedgerDate(u.Entry.DateLedger)
		if err != nil {
			return nil, err
		}
		result[i] = domain.PostedLeg{
			EntryID:     u.Entry.ID,
			Description: u.Entry.Description,
			DateLedger:  date,
			Leg:         u.EntryAccountPayload.toDomain(),
		}
	}
	return result, nil
}

// BalanceAccountPayload identifies the account of a balance row.
type BalanceAccountPayload struct {
	ID       int64  `json:"id"`
	Number   int64  `json:"number"`
	Currency string `json:"currency,omitempty"`
}

// BalanceResponse is one account's balance over the requested window.
type BalanceResponse struct {
	Account       BalanceAccountPayload `json:"account"`
	Balance       decimal.Decimal       `json:"balance"`
	BalanceNative decimal.Decimal       `json:"balanceNative"`
	LegCount      int                   `json:"legCount"`
	EntryCount    int                   `json:"entryCount"`
}

// BalancesFromDomain converts snapshots to responses.
func BalancesFromDomain(snapshots []domain.BalanceSnapshot) []BalanceResponse {
	result := make([]BalanceResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = BalanceResponse{
			Account:       BalanceAccountPayload{ID: s.Account.ID, Number: s.Number, Currency: s.Currency},
			Balance:       s.Balance,
			BalanceNative: s.BalanceNative,
			LegCount:      s.LegCount,
			EntryCount:    s.EntryCount,
		}
	}
	return result
}

// BalanceWindowResponse is one end date's balances. A list of these keeps request order
// and repeated end dates.
type BalanceWindowResponse struct {
	End      string            `json:"end"`
	Balances []BalanceResponse `json:"balances"`
}

// BalanceWindowsFromDomain pairs each end date with its snapshot set.
func BalanceWindowsFromDomain(ends []string, sets [][]domain.BalanceSnapshot) []BalanceWindowResponse {
	result := make([]BalanceWindowResponse, len(sets))
	for i, set := range sets {
		result[i] = BalanceWindowResponse{End: ends[i], Balances: BalancesFromDomain(set)}
	}
	return result
}

// BalancesToDomain converts responses back to snapshots.
func BalancesToDomain(rows []BalanceResponse) []domain.BalanceSnapshot {
	result := make([]domain.BalanceSnapshot, len(rows))
	for i, r := range rows {
		result[i] = domain.BalanceSnapshot{
			Account:       domain.AccountRef{ID: r.Account.ID},
			Number:        r.Account.Number,
			Currency:      r.Account.Currency,
			Balance:       r.Balance,
			BalanceNative: r.BalanceNative,
			LegCount:      r.LegCount,
			EntryCount:    r.EntryCount,
		}
	}
	return result
}

// BalanceCheckResponse is the ledger-wide integrity report.
type BalanceCheckResponse struct {
	Total             decimal.Decimal `json:"total"`
	EntryCount        int             `json:"entryCount"`
	UnbalancedEntries []int64         `json:"unbalancedEntries,omitempty"`
}

// LockResponse represents a lock in API responses.
type LockResponse struct {
	UUID      string    `json:"uuid"`
	Entry     IDRef     `json:"entry"`
	CreatedAt time.Time `json:"createdAt"`
}

// LocksFromDomain converts domain locks to responses.
func LocksFromDomain(locks []domain.Lock) []LockResponse {
	result := make([]LockResponse, len(locks))
	for i, l := range locks {
		result[i] = LockResponse{UUID: l.UUID, Entry: IDRef{ID: l.EntryID}, CreatedAt: l.CreatedAt}
	}
	return result
}

// ToDomain converts the response back to a domain lock.
func (r LockResponse) ToDomain() domain.Lock {
	return domain.Lock{UUID: r.UUID, EntryID: r.Entry.ID, CreatedAt: r.CreatedAt}
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// AddressResponse represents an address in API responses.
type AddressResponse struct {
	ID      int64  `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country IDRef  `json:"country"`
}

// AddressFromDomain converts domain address to response.
func AddressFromDomain(a domain.Address) AddressResponse {
	return AddressResponse{ID: a.ID, Street: a.Street, City: a.City, Zip: a.Zip, Country: IDRef{ID: int64(a.Country)}}
}

// ToDomain converts the response back to a domain address.
func (r AddressResponse) ToDomain() domain.Address {
	return domain.Address{ID: r.ID, Street: r.Street, City: r.City, Zip: r.Zip, Country: domain.Country(r.Country.ID)}
}

// PaymentProfileFromDomain converts a domain payment profile to its wire form.
func PaymentProfileFromDomain(p domain.PaymentProfile) PaymentProfilePayload {
	return PaymentProfilePayload{
		ID:      p.ID,
		Company: UUIDRef{UUID: p.CompanyUUID},
		Account: IDRef{ID: p.Account.ID},
		IBAN:    p.IBAN,
		Type:    int(p.Type),
	}
}

// ToDomain converts the wire form back to a domain payment profile.
func (p PaymentProfilePayload) ToDomain() domain.PaymentProfile {
	return domain.PaymentProfile{
		ID:          p.ID,
		CompanyUUID: p.Company.UUID,
		Account:     domain.AccountRef{ID: p.Account.ID},
		IBAN:        p.IBAN,
		Type:        domain.PaymentProfileType(p.Type),
	}
}

// ImportedInvoicePayload acknowledges one imported draft.
type ImportedInvoicePayload struct {
	UUID  string `json:"uuid"`
	Items int    `json:"items"`
}

// InvoiceImportResponse acknowledges an import batch.
type InvoiceImportResponse struct {
	Response []ImportedInvoicePayload `json:"response"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
