package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
)

const (
	// DirectoryCacheKey is where the account number→id directory is cached.
	DirectoryCacheKey = "accounts:directory"

	// DefaultDirectoryTTL is how long a cached directory is trusted.
	DefaultDirectoryTTL = 10 * time.Minute
)

// AccountUseCase resolves account numbers to ids.
type AccountUseCase struct {
	accounts AccountGateway
	cache    Cache
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil, in which case every
// call reads the remote account list.
func NewAccountUseCase(accounts AccountGateway, cache Cache, ttl time.Duration, logger zerolog.Logger) *AccountUseCase {
	if ttl <= 0 {
		ttl = DefaultDirectoryTTL
	}
	return &AccountUseCase{
		accounts: accounts,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// ListAccounts returns the remote chart of accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return uc.accounts.ListAccounts(ctx)
}

// Directory returns the account number→id directory.
func (uc *AccountUseCase) Directory(ctx context.Context) (domain.AccountDirectory, error) {
	if dir, ok := uc.cachedDirectory(ctx); ok {
		return dir, nil
	}

	accounts, err := uc.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	dir := domain.NewAccountDirectory(accounts)
	uc.storeDirectory(ctx, dir)

	return dir, nil
}

// Invalidate drops the cached directory so the next lookup reads the remote list.
func (uc *AccountUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, DirectoryCacheKey)
}

func (uc *AccountUseCase) cachedDirectory(ctx context.Context) (domain.AccountDirectory, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, DirectoryCacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Msg("account directory cache read failed")
		}
		return nil, false
	}

	var dir domain.AccountDirectory
	if err := json.Unmarshal(raw, &dir); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding malformed cached account directory")
		return nil, false
	}

	return dir, true
}

func (uc *AccountUseCase) storeDirectory(ctx context.Context, dir domain.AccountDirectory) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(dir)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("account directory not cacheable")
		return
	}

	if err := uc.cache.Set(ctx, DirectoryCacheKey, raw, uc.ttl); err != nil {
		uc.logger.Warn().Err(err).Msg("account directory cache write failed")
	}
}
