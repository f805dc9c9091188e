package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/adapter/repository/memory"
)

func newTestRouter(rateLimit int) http.Handler {
	return NewStoreRouter(memory.NewStore(memory.DefaultAccounts()...), zerolog.Nop(), rateLimit, prometheus.NewRegistry())
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := newTestRouter(0)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected %s to return 200, got %d", path, rec.Code)
		}
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := newTestRouter(1)

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/company/list", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", code)
	}
}

func TestNewRouter_HealthIsNotRateLimited(t *testing.T) {
	router := newTestRouter(1)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := newTestRouter(0)

	routes, ok := router.(chi.Routes)
	if !ok {
		t.Fatalf("expected chi router")
	}

	expected := map[string]bool{
		"POST /accounting/account/list":       false,
		"POST /accounting/entry/insert":       false,
		"POST /accounting/entry/account/list": false,
		"GET /accounting/group/list":          false,
		"POST /accounting/balance/get/multi":  false,
		"GET /accounting/balance/check":       false,
		"POST /accounting/lock/insert":        false,
		"POST /accounting/lock/delete":        false,
		"GET /company/list":                   false,
		"POST /payment-profile/insert":        false,
		"POST /invoice/import":                false,
	}

	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + strings.TrimSuffix(route, "/")
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}

	for route, found := range expected {
		if !found {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/accounting/entry/insert", strings.NewReader(`{"description":"x","dateLedger":"2024-13-01","entryAccounts":[]}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "dateLedger") {
		t.Fatalf("expected the failing field to be named, got %s", rec.Body.String())
	}
}
