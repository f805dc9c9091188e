// Package memory is an in-memory accounting store. It backs the emulator of the remote
// service and integration tests of the client.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
)

// Invoice is an imported draft as stored.
type Invoice struct {
	UUID  string
	Draft domain.InvoiceDraft
}

// Store is safe for concurrent use. Every read returns copies.
type Store struct {
	mu sync.RWMutex

	accounts  []domain.Account
	entries   map[int64]*domain.Entry
	groups    map[int64]domain.EntryGroup
	locks     map[string]domain.Lock
	companies []domain.Company
	addresses map[string][]domain.Address
	profiles  []domain.PaymentProfile
	invoices  []Invoice

	nextEntryID   int64
	nextLegID     int64
	nextGroupID   int64
	nextAddressID int64
	nextProfileID int64

	now func() time.Time
}

var (
	_ usecase.AccountGateway = (*Store)(nil)
	_ usecase.EntryGateway   = (*Store)(nil)
	_ usecase.LockGateway    = (*Store)(nil)
	_ usecase.BalanceGateway = (*Store)(nil)
	_ usecase.CompanyGateway = (*Store)(nil)
	_ usecase.InvoiceGateway = (*Store)(nil)
)

// NewStore creates a store holding the given chart of accounts.
func NewStore(accounts ...domain.Account) *Store {
	return &Store{
		accounts:  slices.Clone(accounts),
		entries:   make(map[int64]*domain.Entry),
		groups:    make(map[int64]domain.EntryGroup),
		locks:     make(map[string]domain.Lock),
		addresses: make(map[string][]domain.Address),
		now:       time.Now,
	}
}

// DefaultAccounts is a small chart of accounts for a Swiss company.
func DefaultAccounts() []domain.Account {
	return []domain.Account{
		{ID: 1, Number: 1020, Name: "Bank CHF", Currency: "CHF", Type: domain.AccountTypeAsset},
		{ID: 2, Number: 1100, Name: "Receivables", Currency: "CHF", Type: domain.AccountTypeAsset},
		{ID: 3, Number: 3000, Name: "Revenue", Currency: "CHF", Type: domain.AccountTypeRevenue},
		{ID: 4, Number: 2200, Name: "VAT due", Currency: "CHF", Type: domain.AccountTypeLiability},
		{ID: 5, Number: 6000, Name: "Rent", Currency: "CHF", Type: domain.AccountTypeExpense},
		{ID: 6, Number: 1030, Name: "Bank EUR", Currency: "EUR", Type: domain.AccountTypeAsset},
		{ID: 7, Number: 2000, Name: "Payables", Currency: "CHF", Type: domain.AccountTypeLiability},
	}
}

// ListAccounts returns the chart of accounts.
func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.accounts), nil
}

// GetAccount returns one account.
func (s *Store) GetAccount(_ context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.account(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, id)
	}
	return &a, nil
}

// InsertEntry stores a balanced entry and returns its id. A group without id is created.
func (s *Store) InsertEntry(_ context.Context, entry *domain.Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.prepare(entry)
	if err != nil {
		return 0, err
	}

	s.nextEntryID++
	stored.ID = s.nextEntryID
	s.entries[stored.ID] = stored

	return stored.ID, nil
}

// UpdateEntry replaces an unlocked entry.
func (s *Store) UpdateEntry(_ context.Context, id int64, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(id); err != nil {
		return err
	}

	stored, err := s.prepare(entry)
	if err != nil {
		return err
	}

	stored.ID = id
	s.entries[id] = stored
	return nil
}

// GetEntry returns an entry.
func (s *Store) GetEntry(_ context.Context, id int64) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrEntryNotFound, id)
	}
	return cloneEntry(e), nil
}

// DeleteEntry removes an unlocked entry.
func (s *Store) DeleteEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(id); err != nil {
		return err
	}

	delete(s.entries, id)
	return nil
}

// ListPostedLegs returns the legs matching f, ordered by ledger date then entry id.
func (s *Store) ListPostedLegs(_ context.Context, f domain.LegFilter) ([]domain.PostedLeg, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var legs []domain.PostedLeg
	for _, e := range s.sortedEntries() {
		for _, leg := range e.Legs {
			if !f.Match(&e, leg) {
				continue
			}
			legs = append(legs, domain.PostedLeg{
				EntryID:     e.ID,
				Description: e.Description,
				DateLedger:  e.DateLedger,
				Leg:         leg,
			})
		}
	}
	return legs, nil
}

// InsertEntryGroup creates a group and returns its id.
func (s *Store) InsertEntryGroup(_ context.Context, description string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertGroup(description), nil
}

// ListEntryGroups returns every group ordered by id.
func (s *Store) ListEntryGroups(_ context.Context) ([]domain.EntryGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]domain.EntryGroup, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// Balances aggregates the stored entries over one window.
func (s *Store) Balances(_ context.Context, query usecase.BalanceQuery) ([]domain.BalanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.ComputeBalances(s.accounts, s.sortedEntries(), query.Start, query.End, query.Filters)
}

// BalancesMulti aggregates the stored entries once per end date.
func (s *Store) BalancesMulti(_ context.Context, query usecase.BalanceMultiQuery) ([][]domain.BalanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.ComputeBalancesMulti(s.accounts, s.sortedEntries(), query.Start, query.EndDates, query.Filters)
}

// CheckBalance sums every leg in base currency and lists entries that do not balance.
func (s *Store) CheckBalance(_ context.Context) (*usecase.BalanceCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	check := &usecase.BalanceCheck{Total: decimal.Zero}
	for _, e := range s.sortedEntries() {
		check.EntryCount++
		for _, leg := range e.Legs {
			check.Total = check.Total.Add(leg.SignedBase())
		}
		if len(e.Imbalance()) > 0 {
			check.UnbalancedEntries = append(check.UnbalancedEntries, e.ID)
		}
	}
	return check, nil
}

// LockEntry locks an entry. Locking a locked entry returns the existing lock.
func (s *Store) LockEntry(_ context.Context, entryID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entryID]; !ok {
		return "", fmt.Errorf("%w: %d", domain.ErrEntryNotFound, entryID)
	}

	for _, l := range s.locks {
		if l.EntryID == entryID {
			return l.UUID, nil
		}
	}

	lock := domain.Lock{UUID: ulid.Make().String(), EntryID: entryID, CreatedAt: s.now().UTC()}
	s.locks[lock.UUID] = lock
	return lock.UUID, nil
}

// ListLocks returns every lock ordered by uuid, which is creation order.
func (s *Store) ListLocks(_ context.Context) ([]domain.Lock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locks := make([]domain.Lock, 0, len(s.locks))
	for _, l := range s.locks {
		locks = append(locks, l)
	}
	sort.Slice(locks, func(i, j int) bool { return locks[i].UUID < locks[j].UUID })
	return locks, nil
}

// DeleteLock removes a lock.
func (s *Store) DeleteLock(_ context.Context, lockUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locks[lockUUID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLockNotFound, lockUUID)
	}
	delete(s.locks, lockUUID)
	return nil
}

// ListCompanies returns companies in insertion order.
func (s *Store) ListCompanies(_ context.Context) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.companies), nil
}

// InsertCompany creates a company and returns its uuid. Names are not unique.
func (s *Store) InsertCompany(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Company{UUID: uuid.NewString(), Name: name}
	s.companies = append(s.companies, c)
	return c.UUID, nil
}

// ListAddresses returns the addresses of a company.
func (s *Store) ListAddresses(_ context.Context, companyUUID string) ([]domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasCompany(companyUUID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, companyUUID)
	}
	return slices.Clone(s.addresses[companyUUID]), nil
}

// InsertAddress creates an address for a company and returns its id.
func (s *Store) InsertAddress(_ context.Context, companyUUID string, address domain.Address) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCompany(companyUUID) {
		return 0, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, companyUUID)
	}

	s.nextAddressID++
	address.ID = s.nextAddressID
	s.addresses[companyUUID] = append(s.addresses[companyUUID], address)
	return address.ID, nil
}

// ListPaymentProfiles returns the payment profiles of a company.
func (s *Store) ListPaymentProfiles(_ context.Context, companyUUID string) ([]domain.PaymentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasCompany(companyUUID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, companyUUID)
	}

	var profiles []domain.PaymentProfile
	for _, p := range s.profiles {
		if p.CompanyUUID == companyUUID {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// InsertPaymentProfile creates a payment profile and returns its id.
func (s *Store) InsertPaymentProfile(_ context.Context, profile domain.PaymentProfile) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCompany(profile.CompanyUUID) {
		return 0, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, profile.CompanyUUID)
	}
	if _, ok := s.account(profile.Account.ID); !ok {
		return 0, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, profile.Account.ID)
	}

	s.nextProfileID++
	profile.ID = s.nextProfileID
	s.profiles = append(s.profiles, profile)
	return profile.ID, nil
}

// ImportInvoices stores drafts whose address and payment profile exist. The batch is
// all or nothing.
func (s *Store) ImportInvoices(_ context.Context, drafts []domain.InvoiceDraft) ([]usecase.ImportedInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range drafts {
		if !s.hasAddress(d.Address) {
			return nil, fmt.Errorf("draft %d: %w: address %d", i, domain.ErrNotFound, d.Address)
		}
		if !s.hasProfile(d.PaymentProfile.ID) {
			return nil, fmt.Errorf("draft %d: %w: payment profile %d", i, domain.ErrNotFound, d.PaymentProfile.ID)
		}
	}

	imported := make([]usecase.ImportedInvoice, len(drafts))
	for i, d := range drafts {
		inv := Invoice{UUID: uuid.NewString(), Draft: d}
		inv.Draft.Items = slices.Clone(d.Items)
		s.invoices = append(s.invoices, inv)
		imported[i] = usecase.ImportedInvoice{UUID: inv.UUID, Items: len(d.Items)}
	}
	return imported, nil
}

// Invoices returns the imported invoices in import order.
func (s *Store) Invoices() []Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.invoices)
}

// prepare validates entry against the store and returns the copy to keep. Callers hold
// the write lock.
func (s *Store) prepare(entry *domain.Entry) (*domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	stored := cloneEntry(entry)
	for i := range stored.Legs {
		if _, ok := s.account(stored.Legs[i].Account.ID); !ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, stored.Legs[i].Account.ID)
		}
		if stored.Legs[i].ID == 0 {
			s.nextLegID++
			stored.Legs[i].ID = s.nextLegID
		}
	}

	if g := stored.Group; g != nil {
		switch existing, ok := s.groups[g.ID]; {
		case g.ID == 0:
			g.ID = s.insertGroup(g.Description)
		case ok:
			*g = existing
		default:
			return nil, fmt.Errorf("%w: entry group %d", domain.ErrNotFound, g.ID)
		}
	}

	return stored, nil
}

func (s *Store) insertGroup(description string) int64 {
	s.nextGroupID++
	s.groups[s.nextGroupID] = domain.EntryGroup{ID: s.nextGroupID, Description: description}
	return s.nextGroupID
}

func (s *Store) mutable(id int64) error {
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %d", domain.ErrEntryNotFound, id)
	}
	for _, l := range s.locks {
		if l.EntryID == id {
			return domain.ErrImmutableEntry
		}
	}
	return nil
}

func (s *Store) sortedEntries() []domain.Entry {
	entries := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, *cloneEntry(e))
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DateLedger.Equal(entries[j].DateLedger) {
			return entries[i].DateLedger.Before(entries[j].DateLedger)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (s *Store) account(id int64) (domain.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *Store) hasCompany(companyUUID string) bool {
	return slices.ContainsFunc(s.companies, func(c domain.Company) bool { return c.UUID == companyUUID })
}

func (s *Store) hasAddress(id int64) bool {
	for _, list := range s.addresses {
		if slices.ContainsFunc(list, func(a domain.Address) bool { return a.ID == id }) {
			return true
		}
	}
	return false
}

func (s *Store) hasProfile(id int64) bool {
	return slices.ContainsFunc(s.profiles, func(p domain.PaymentProfile) bool { return p.ID == id })
}

func cloneEntry(e *domain.Entry) *domain.Entry {
	c := *e
	c.Legs = slices.Clone(e.Legs)
	if e.Group != nil {
		g := *e.Group
		c.Group = &g
	}
	return &c
}

// Ping reports whether the store can serve requests.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
