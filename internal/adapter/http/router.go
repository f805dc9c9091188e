package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/adapter/http/handler"
	"github.com/iho/ledgerclient/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	EntryHandler   *handler.EntryHandler
	LedgerHandler  *handler.LedgerHandler
	CompanyHandler *handler.CompanyHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger

	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit int
	// Gatherer serves /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter creates the router of the ledger emulator. Paths mirror the remote service.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders(cfg.Logger))

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit))

		r.Route("/accounting", func(r chi.Router) {
			r.Post("/account/list", cfg.AccountHandler.List)
			r.Post("/account/detail", cfg.AccountHandler.Detail)

			r.Route("/entry", func(r chi.Router) {
				r.Post("/insert", cfg.EntryHandler.Insert)
				r.Post("/update", cfg.EntryHandler.Update)
				r.Post("/detail", cfg.EntryHandler.Detail)
				r.Post("/delete", cfg.EntryHandler.Delete)
				r.Post("/account/list", cfg.EntryHandler.ListLegs)
			})

			r.Post("/group/insert", cfg.EntryHandler.InsertGroup)
			r.Get("/group/list", cfg.EntryHandler.ListGroups)

			r.Route("/balance", func(r chi.Router) {
				r.Post("/get", cfg.LedgerHandler.Balances)
				r.Post("/get/multi", cfg.LedgerHandler.BalancesMulti)
				r.Get("/check", cfg.LedgerHandler.Check)
			})

			r.Route("/lock", func(r chi.Router) {
				r.Post("/insert", cfg.LedgerHandler.Lock)
				r.Get("/list", cfg.LedgerHandler.ListLocks)
				r.Post("/delete", cfg.LedgerHandler.Unlock)
			})
		})

		r.Get("/company/list", cfg.CompanyHandler.List)
		r.Post("/company/insert", cfg.CompanyHandler.Insert)
		r.Post("/address/list", cfg.CompanyHandler.ListAddresses)
		r.Post("/address/insert", cfg.CompanyHandler.InsertAddress)
		r.Post("/payment-profile/list", cfg.CompanyHandler.ListPaymentProfiles)
		r.Post("/payment-profile/insert", cfg.CompanyHandler.InsertPaymentProfile)
		r.Post("/invoice/import", cfg.CompanyHandler.ImportInvoices)
	})

	return r
}

// Store is what a router built by NewStoreRouter serves from.
type Store interface {
	handler.AccountService
	handler.EntryService
	handler.LedgerService
	handler.CompanyService
	handler.Pinger
}

// NewStoreRouter wires every handler to one store.
func NewStoreRouter(store Store, logger zerolog.Logger, rateLimit int, gatherer prometheus.Gatherer) http.Handler {
	return NewRouter(RouterConfig{
		AccountHandler: handler.NewAccountHandler(store),
		EntryHandler:   handler.NewEntryHandler(store),
		LedgerHandler:  handler.NewLedgerHandler(store),
		CompanyHandler: handler.NewCompanyHandler(store),
		HealthHandler:  handler.NewHealthHandler(map[string]handler.Pinger{"store": store}),
		Logger:         logger,
		RateLimit:      rateLimit,
		Gatherer:       gatherer,
	})
}
