package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	httpAdapter "github.com/iho/ledgerclient/internal/adapter/http"
	"github.com/iho/ledgerclient/internal/adapter/repository/memory"
	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/infrastructure/config"
	"github.com/iho/ledgerclient/internal/infrastructure/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledger-emulator"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("emulator failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	accounts := memory.DefaultAccounts()
	if cfg.EmulatorAccounts != "" {
		var err error
		if accounts, err = loadAccounts(cfg.EmulatorAccounts); err != nil {
			return err
		}
	}

	store := memory.NewStore(accounts...)
	log.Info().Int("accounts", len(accounts)).Msg("store ready")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.EmulatorPort),
		Handler:      httpAdapter.NewStoreRouter(store, log, cfg.EmulatorRateLimit, prometheus.DefaultGatherer),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.EmulatorPort).Msg("starting emulator")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down emulator...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("emulator stopped")
	return nil
}

type accountsFile struct {
	Accounts []struct {
		ID       int64              `yaml:"id"`
		Number   int64              `yaml:"number"`
		Name     string             `yaml:"name"`
		Currency string             `yaml:"currency"`
		Type     domain.AccountType `yaml:"type"`
	} `yaml:"accounts"`
}

// loadAccounts reads a chart of accounts from YAML.
func loadAccounts(path string) ([]domain.Account, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var file accountsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("accounts file %s lists no accounts", path)
	}

	seen := make(map[int64]bool, len(file.Accounts))
	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, a := range file.Accounts {
		if a.ID == 0 || a.Number == 0 {
			return nil, fmt.Errorf("account %q: id and number are required", a.Name)
		}
		if seen[a.Number] {
			return nil, fmt.Errorf("account number %d listed twice", a.Number)
		}
		seen[a.Number] = true

		if err := domain.ValidateCurrency(a.Currency); err != nil {
			return nil, fmt.Errorf("account %d: %w", a.Number, err)
		}

		accounts = append(accounts, domain.Account{
			ID:       a.ID,
			Number:   a.Number,
			Name:     a.Name,
			Currency: a.Currency,
			Type:     a.Type,
		})
	}
	return accounts, nil
}
