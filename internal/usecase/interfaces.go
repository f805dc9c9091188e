package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerclient/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// AccountGateway reads the chart of accounts from the remote ledger.
type AccountGateway interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// EntryGateway writes and reads entries on the remote ledger.
type EntryGateway interface {
	InsertEntry(ctx context.Context, entry *domain.Entry) (int64, error)
	UpdateEntry(ctx context.Context, id int64, entry *domain.Entry) error
	GetEntry(ctx context.Context, id int64) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// LockGateway manages reconciliation locks on the remote ledger.
type LockGateway interface {
	LockEntry(ctx context.Context, entryID int64) (string, error)
	ListLocks(ctx context.Context) ([]domain.Lock, error)
	DeleteLock(ctx context.Context, uuid string) error
}

// BalanceGateway runs balance aggregation on the remote ledger.
type BalanceGateway interface {
	Balances(ctx context.Context, query BalanceQuery) ([]domain.BalanceSnapshot, error)
	BalancesMulti(ctx context.Context, query BalanceMultiQuery) ([][]domain.BalanceSnapshot, error)
	CheckBalance(ctx context.Context) (*BalanceCheck, error)
}

// CompanyGateway manages companies and their payment profiles.
type CompanyGateway interface {
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	InsertCompany(ctx context.Context, name string) (string, error)
	ListPaymentProfiles(ctx context.Context, companyUUID string) ([]domain.PaymentProfile, error)
	InsertPaymentProfile(ctx context.Context, profile domain.PaymentProfile) (int64, error)
}

// InvoiceGateway sends mapped invoice drafts to the remote ledger.
type InvoiceGateway interface {
	ImportInvoices(ctx context.Context, drafts []domain.InvoiceDraft) ([]ImportedInvoice, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Metrics records use case outcomes.
type Metrics interface {
	EntryBuilt()
	EntryRejected(reason string)
	InvoicesImported(count int)
	BalanceVerified(ok bool)
}

// BalanceQuery selects a single balance window.
type BalanceQuery struct {
	Start   time.Time
	End     time.Time
	Filters domain.BalanceFilters
}

// BalanceMultiQuery selects one window per end date, all starting at Start.
type BalanceMultiQuery struct {
	Start    time.Time
	EndDates []time.Time
	Filters  domain.BalanceFilters
}

// Single returns the single-window query for the i-th end date.
func (q BalanceMultiQuery) Single(i int) BalanceQuery {
	return BalanceQuery{Start: q.Start, End: q.EndDates[i], Filters: q.Filters}
}

// BalanceCheck is the ledger-wide integrity report of the remote store.
type BalanceCheck struct {
	Total             decimal.Decimal
	EntryCount        int
	UnbalancedEntries []int64
}

// ImportedInvoice is the remote acknowledgement of one imported draft.
type ImportedInvoice struct {
	UUID  string
	Items int
}

type noopMetrics struct{}

func (noopMetrics) EntryBuilt()          {}
func (noopMetrics) EntryRejected(string) {}
func (noopMetrics) InvoicesImported(int) {}
func (noopMetrics) BalanceVerified(bool) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
