package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesBuilt    prometheus.Counter
	EntriesRejected *prometheus.CounterVec

	// Import metrics
	InvoicesImportedTotal prometheus.Counter

	// Balance metrics
	BalanceVerifications *prometheus.CounterVec

	// Remote API metrics
	TransportRequests *prometheus.CounterVec
	TransportDuration *prometheus.HistogramVec

	// Cache metrics
	CacheOperations *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg instead of the default registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Entry metrics
		EntriesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerclient_entries_built_total",
			Help: "Total number of balanced entries built",
		}),
		EntriesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerclient_entries_rejected_total",
				Help: "Total number of entries rejected by reason",
			},
			[]string{"reason"},
		),

		// Import metrics
		InvoicesImportedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerclient_invoices_imported_total",
			Help: "Total number of invoices imported",
		}),

		// Balance metrics
		BalanceVerifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerclient_balance_verifications_total",
				Help: "Balance verifications by result",
			},
			[]string{"result"},
		),

		// Remote API metrics
		TransportRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerclient_api_requests_total",
				Help: "Total remote API requests",
			},
			[]string{"method", "path", "status"},
		),
		TransportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerclient_api_duration_seconds",
				Help:    "Remote API request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Cache metrics
		CacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerclient_cache_operations_total",
				Help: "Cache operations by result",
			},
			[]string{"operation", "result"},
		),
	}
}

// EntryBuilt counts a built entry.
func (m *Metrics) EntryBuilt() {
	m.EntriesBuilt.Inc()
}

// EntryRejected counts a rejected entry.
func (m *Metrics) EntryRejected(reason string) {
	m.EntriesRejected.WithLabelValues(reason).Inc()
}

// InvoicesImported counts imported invoices.
func (m *Metrics) InvoicesImported(count int) {
	m.InvoicesImportedTotal.Add(float64(count))
}

// BalanceVerified counts a balance verification.
func (m *Metrics) BalanceVerified(ok bool) {
	result := "match"
	if !ok {
		result = "mismatch"
	}
	m.BalanceVerifications.WithLabelValues(result).Inc()
}

// ObserveRequest records one remote API call. status is 0 when no response arrived.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.TransportRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.TransportDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CacheResult counts a cache operation outcome such as hit, miss or error.
func (m *Metrics) CacheResult(operation, result string) {
	m.CacheOperations.WithLabelValues(operation, result).Inc()
}
