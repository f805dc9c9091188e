package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/infrastructure/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write accounts file: %v", err)
	}
	return path
}

func TestLoadAccounts(t *testing.T) {
	path := writeFile(t, `
accounts:
  - id: 1
    number: 1020
    name: Bank CHF
    currency: CHF
    type: 1
  - id: 2
    number: 3000
    name: Revenue
    type: 4
`)

	accounts, err := loadAccounts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}

	if accounts[0].Number != 1020 || accounts[0].Type != domain.AccountTypeAsset {
		t.Fatalf("unexpected first account: %+v", accounts[0])
	}

	if accounts[1].Currency != "" || accounts[1].Type != domain.AccountTypeRevenue {
		t.Fatalf("unexpected second account: %+v", accounts[1])
	}
}

func TestLoadAccountsRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "accounts: []\n"},
		{"missing number", "accounts:\n  - id: 1\n    name: x\n"},
		{"duplicate number", "accounts:\n  - {id: 1, number: 1020}\n  - {id: 2, number: 1020}\n"},
		{"bad currency", "accounts:\n  - {id: 1, number: 1020, currency: XXX}\n"},
		{"not yaml", "accounts: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadAccounts(writeFile(t, tt.content)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	if _, err := loadAccounts(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		EmulatorPort:        "0",
		HTTPShutdownTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop()) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunFailsOnBadAccountsFile(t *testing.T) {
	cfg := &config.Config{EmulatorAccounts: filepath.Join(t.TempDir(), "missing.yaml")}

	err := run(context.Background(), cfg, zerolog.Nop())
	if err == nil || errors.Is(err, context.Canceled) {
		t.Fatalf("expected a load error, got %v", err)
	}
}
