package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGER_API_URL", "")
	t.Setenv("LEDGER_API_TOKEN", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LedgerAPIURL != "http://localhost:8080" {
		t.Fatalf("expected default API URL, got %q", cfg.LedgerAPIURL)
	}

	if cfg.LedgerAPIToken != "" {
		t.Fatalf("expected token default to be empty, got %q", cfg.LedgerAPIToken)
	}

	if cfg.EmulatorPort != "8080" {
		t.Fatalf("expected default emulator port 8080, got %s", cfg.EmulatorPort)
	}

	if cfg.DuplicatePolicy != domain.DuplicateFirstMatch {
		t.Fatalf("expected first-match duplicate policy, got %s", cfg.DuplicatePolicy)
	}

	if cfg.DirectoryCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.DirectoryCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGER_API_URL", "https://ledger.example/api")
	t.Setenv("LEDGER_API_TOKEN", "top-secret")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("EMULATOR_PORT", "9090")
	t.Setenv("LEDGER_HTTP_TIMEOUT", "45s")
	t.Setenv("DUPLICATE_POLICY", "reject")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LedgerAPIURL != "https://ledger.example/api" {
		t.Fatalf("expected custom API URL, got %s", cfg.LedgerAPIURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.EmulatorPort != "9090" {
		t.Fatalf("expected emulator port override, got %s", cfg.EmulatorPort)
	}

	if cfg.LedgerHTTPTimeout != 45*time.Second {
		t.Fatalf("expected http timeout override, got %s", cfg.LedgerHTTPTimeout)
	}

	if cfg.LedgerAPIToken != "top-secret" || cfg.DuplicatePolicy != domain.DuplicateReject {
		t.Fatalf("expected overrides, got token=%s policy=%s", cfg.LedgerAPIToken, cfg.DuplicatePolicy)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidDuplicatePolicy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DUPLICATE_POLICY", "last")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown duplicate policy")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.env")
	if err := os.WriteFile(path, []byte("LEDGER_API_TOKEN=from-file\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv("LOG_LEVEL", "warn")
	os.Unsetenv("LEDGER_API_TOKEN")
	t.Cleanup(func() { os.Unsetenv("LEDGER_API_TOKEN") })

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LedgerAPIToken != "from-file" {
		t.Fatalf("expected token from env file, got %q", cfg.LedgerAPIToken)
	}

	if cfg.LogLevel != "warn" {
		t.Fatalf("expected process env to win, got %q", cfg.LogLevel)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}
