package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerclient/internal/adapter/ledgerapi"
	redisRepo "github.com/iho/ledgerclient/internal/adapter/repository/redis"
	"github.com/iho/ledgerclient/internal/adapter/transport"
	"github.com/iho/ledgerclient/internal/infrastructure/config"
	"github.com/iho/ledgerclient/internal/infrastructure/logger"
	"github.com/iho/ledgerclient/internal/infrastructure/metrics"
	"github.com/iho/ledgerclient/internal/infrastructure/redis"
	"github.com/iho/ledgerclient/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what the subcommands share. The client and cache are built on first use so
// offline commands never dial anything.
type app struct {
	envFile string
	baseURL string
	token   string
	timeout time.Duration

	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Metrics

	client *ledgerapi.Client
	redis  *goredis.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Ledger client tool",
		Long:          `A command line interface for building entries, checking balances and importing invoices against the remote ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load settings from this .env file")
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "url", "", "Base URL of the ledger API (overrides LEDGER_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.token, "token", "", "Bearer token (overrides LEDGER_API_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Request timeout (overrides LEDGER_HTTP_TIMEOUT)")

	rootCmd.AddCommand(
		vatCmd(),
		entryCmd(a),
		balanceCmd(a),
		importCmd(a),
		consistencyCmd(a),
		lockCmd(a),
		unlockCmd(a),
		locksCmd(a),
		companyCmd(a),
	)

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	if a.baseURL != "" {
		cfg.LedgerAPIURL = a.baseURL
	}
	if a.token != "" {
		cfg.LedgerAPIToken = a.token
	}
	if a.timeout > 0 {
		cfg.LedgerHTTPTimeout = a.timeout
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledgerctl", Output: os.Stderr})
	a.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	return nil
}

func (a *app) close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	return err
}

// ledger returns the API client for the configured endpoint.
func (a *app) ledger() *ledgerapi.Client {
	if a.client == nil {
		tr := transport.NewHTTPTransport(&http.Client{Timeout: a.cfg.LedgerHTTPTimeout}, a.log, a.metrics)
		a.client = ledgerapi.New(tr, transport.Endpoint{BaseURL: a.cfg.LedgerAPIURL, Token: a.cfg.LedgerAPIToken})
	}
	return a.client
}

// cache returns the directory cache, or nil when redis is not configured or unreachable.
func (a *app) cache(ctx context.Context) usecase.Cache {
	if a.redis == nil {
		client, err := redis.NewClient(ctx, a.cfg.RedisURL)
		switch {
		case errors.Is(err, redis.ErrNotConfigured):
			return nil
		case err != nil:
			a.log.Warn().Err(err).Msg("directory cache disabled")
			return nil
		}
		a.redis = client
	}
	return redisRepo.NewCache(a.redis, a.metrics)
}

func (a *app) accounts(ctx context.Context) *usecase.AccountUseCase {
	if cache := a.cache(ctx); cache != nil {
		return usecase.NewAccountUseCase(a.ledger(), cache, a.cfg.DirectoryCacheTTL, a.log)
	}
	return usecase.NewAccountUseCase(a.ledger(), nil, 0, a.log)
}

func (a *app) entries(ctx context.Context) *usecase.EntryUseCase {
	client := a.ledger()
	return usecase.NewEntryUseCase(a.accounts(ctx), client, client, a.metrics, a.log)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
