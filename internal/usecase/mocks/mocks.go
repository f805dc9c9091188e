package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
)

// MockAccountGateway is a mock implementation of AccountGateway.
type MockAccountGateway struct {
	mu       sync.RWMutex
	accounts []domain.Account
	calls    int

	ListAccountsFunc func(ctx context.Context) ([]domain.Account, error)
}

func NewMockAccountGateway(accounts ...domain.Account) *MockAccountGateway {
	return &MockAccountGateway{
		accounts: accounts,
	}
}

func (m *MockAccountGateway) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Account(nil), m.accounts...), nil
}

// Calls returns how many times ListAccounts was invoked.
func (m *MockAccountGateway) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// MockCompanyGateway is a mock implementation of CompanyGateway.
type MockCompanyGateway struct {
	mu        sync.RWMutex
	companies []domain.Company
	profiles  map[string][]domain.PaymentProfile
	nextID    int64

	ListCompaniesFunc        func(ctx context.Context) ([]domain.Company, error)
	InsertCompanyFunc        func(ctx context.Context, name string) (string, error)
	ListPaymentProfilesFunc  func(ctx context.Context, companyUUID string) ([]domain.PaymentProfile, error)
	InsertPaymentProfileFunc func(ctx context.Context, profile domain.PaymentProfile) (int64, error)
}

func NewMockCompanyGateway(companies ...domain.Company) *MockCompanyGateway {
	return &MockCompanyGateway{
		companies: companies,
		profiles:  make(map[string][]domain.PaymentProfile),
	}
}

func (m *MockCompanyGateway) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	if m.ListCompaniesFunc != nil {
		return m.ListCompaniesFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Company(nil), m.companies...), nil
}

func (m *MockCompanyGateway) InsertCompany(ctx context.Context, name string) (string, error) {
	if m.InsertCompanyFunc != nil {
		return m.InsertCompanyFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	uuid := fmt.Sprintf("company-%d", len(m.companies)+1)
	m.companies = append(m.companies, domain.Company{UUID: uuid, Name: name})
	return uuid, nil
}

func (m *MockCompanyGateway) ListPaymentProfiles(ctx context.Context, companyUUID string) ([]domain.PaymentProfile, error) {
	if m.ListPaymentProfilesFunc != nil {
		return m.ListPaymentProfilesFunc(ctx, companyUUID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.PaymentProfile(nil), m.profiles[companyUUID]...), nil
}

func (m *MockCompanyGateway) InsertPaymentProfile(ctx context.Context, profile domain.PaymentProfile) (int64, error) {
	if m.InsertPaymentProfileFunc != nil {
		return m.InsertPaymentProfileFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	profile.ID = m.nextID
	m.profiles[profile.CompanyUUID] = append(m.profiles[profile.CompanyUUID], profile)
	return profile.ID, nil
}

// AddPaymentProfile seeds a stored profile.
func (m *MockCompanyGateway) AddPaymentProfile(profile domain.PaymentProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile.ID > m.nextID {
		m.nextID = profile.ID
	}
	m.profiles[profile.CompanyUUID] = append(m.profiles[profile.CompanyUUID], profile)
}

// MockInvoiceGateway is a mock implementation of InvoiceGateway.
type MockInvoiceGateway struct {
	mu     sync.Mutex
	Sent   [][]domain.InvoiceDraft
	nextID int

	ImportInvoicesFunc func(ctx context.Context, drafts []domain.InvoiceDraft) ([]usecase.ImportedInvoice, error)
}

func NewMockInvoiceGateway() *MockInvoiceGateway {
	return &MockInvoiceGateway{}
}

func (m *MockInvoiceGateway) ImportInvoices(ctx context.Context, drafts []domain.InvoiceDraft) ([]usecase.ImportedInvoice, error) {
	if m.ImportInvoicesFunc != nil {
		return m.ImportInvoicesFunc(ctx, drafts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, drafts)
	out := make([]usecase.ImportedInvoice, len(drafts))
	for i, d := range drafts {
		m.nextID++
		out[i] = usecase.ImportedInvoice{UUID: fmt.Sprintf("invoice-%d", m.nextID), Items: len(d.Items)}
	}
	return out, nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockMetrics counts the recorded outcomes.
type MockMetrics struct {
	mu       sync.Mutex
	Built    int
	Rejected map[string]int
	Imported int
	Verified map[bool]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Rejected: make(map[string]int),
		Verified: make(map[bool]int),
	}
}

func (m *MockMetrics) EntryBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Built++
}

func (m *MockMetrics) EntryRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[reason]++
}

func (m *MockMetrics) InvoicesImported(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Imported += count
}

func (m *MockMetrics) BalanceVerified(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verified[ok]++
}
