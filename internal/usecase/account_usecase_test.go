package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/testutil"
	"github.com/iho/ledgerclient/internal/usecase"
	"github.com/iho/ledgerclient/internal/usecase/mocks"
)

func TestAccountUseCase_Directory_Cached(t *testing.T) {
	accounts := mocks.NewMockAccountGateway(testutil.Accounts()...)
	cache := mocks.NewMockCache()
	uc := usecase.NewAccountUseCase(accounts, cache, time.Minute, zerolog.Nop())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		dir, err := uc.Directory(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id, err := dir.Resolve(1020)
		if err != nil {
			t.Fatalf("resolve 1020: %v", err)
		}
		if id != testutil.AccountBank {
			t.Errorf("expected id %d, got %d", testutil.AccountBank, id)
		}
	}

	if accounts.Calls() != 1 {
		t.Errorf("expected 1 remote call, got %d", accounts.Calls())
	}

	if err := uc.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := uc.Directory(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accounts.Calls() != 2 {
		t.Errorf("expected reload after invalidate, got %d calls", accounts.Calls())
	}
}

func TestAccountUseCase_Directory_NoCache(t *testing.T) {
	accounts := mocks.NewMockAccountGateway(testutil.Accounts()...)
	uc := usecase.NewAccountUseCase(accounts, nil, 0, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := uc.Directory(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accounts.Calls() != 2 {
		t.Errorf("expected 2 remote calls, got %d", accounts.Calls())
	}
	if err := uc.Invalidate(context.Background()); err != nil {
		t.Errorf("invalidate without cache: %v", err)
	}
}

func TestAccountUseCase_Directory_CacheFailuresFallThrough(t *testing.T) {
	accounts := mocks.NewMockAccountGateway(testutil.Accounts()...)
	cache := mocks.NewMockCache()
	cache.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}
	cache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("connection refused")
	}
	uc := usecase.NewAccountUseCase(accounts, cache, time.Minute, zerolog.Nop())

	dir, err := uc.Directory(context.Background())
	if err != nil {
		t.Fatalf("cache errors must not fail the lookup: %v", err)
	}
	if len(dir) != len(testutil.Accounts()) {
		t.Errorf("expected %d accounts, got %d", len(testutil.Accounts()), len(dir))
	}
}

func TestAccountUseCase_Directory_MalformedCacheEntry(t *testing.T) {
	accounts := mocks.NewMockAccountGateway(testutil.Accounts()...)
	cache := mocks.NewMockCache()
	_ = cache.Set(context.Background(), usecase.DirectoryCacheKey, []byte("{not json"), time.Minute)
	uc := usecase.NewAccountUseCase(accounts, cache, time.Minute, zerolog.Nop())

	dir, err := uc.Directory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dir.Resolve(3000); err != nil {
		t.Errorf("resolve 3000: %v", err)
	}
	if accounts.Calls() != 1 {
		t.Errorf("expected remote reload, got %d calls", accounts.Calls())
	}
}

func TestAccountUseCase_Directory_GatewayError(t *testing.T) {
	accounts := mocks.NewMockAccountGateway()
	accounts.ListAccountsFunc = func(ctx context.Context) ([]domain.Account, error) {
		return nil, errors.New("boom")
	}
	uc := usecase.NewAccountUseCase(accounts, mocks.NewMockCache(), time.Minute, zerolog.Nop())

	if _, err := uc.Directory(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
