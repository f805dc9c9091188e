package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/iho/ledgerclient/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Remote ledger API
	LedgerAPIURL      string        `env:"LEDGER_API_URL"      envDefault:"http://localhost:8080"`
	LedgerAPIToken    string        `env:"LEDGER_API_TOKEN"    envDefault:""`
	LedgerHTTPTimeout time.Duration `env:"LEDGER_HTTP_TIMEOUT" envDefault:"30s"`

	// Redis (optional - leave empty to disable the directory cache)
	RedisURL          string        `env:"REDIS_URL"           envDefault:""`
	DirectoryCacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL" envDefault:"10m"`

	// Find-or-create
	DuplicatePolicy domain.DuplicatePolicy `env:"DUPLICATE_POLICY" envDefault:"first"`

	// Emulator HTTP server
	EmulatorPort        string        `env:"EMULATOR_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"         envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"        envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"         envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"     envDefault:"10s"`
	EmulatorRateLimit   int           `env:"EMULATOR_RATE_LIMIT"       envDefault:"600"`
	EmulatorAccounts    string        `env:"EMULATOR_ACCOUNTS_FILE"    envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables. A .env file in the working
// directory is read first when present; envPath names a different file, which must
// exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.DuplicatePolicy {
	case domain.DuplicateFirstMatch, domain.DuplicateReject:
	default:
		return nil, fmt.Errorf("invalid DUPLICATE_POLICY %q", cfg.DuplicatePolicy)
	}

	return cfg, nil
}
