package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/testutil"
	"github.com/iho/ledgerclient/internal/usecase"
	"github.com/iho/ledgerclient/internal/usecase/mocks"
)

func TestCacheBacksAccountDirectory(t *testing.T) {
	cache, mr := newTestCache(t, nil)

	accounts := mocks.NewMockAccountGateway(testutil.Accounts()...)
	uc := usecase.NewAccountUseCase(accounts, cache, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := uc.Directory(ctx); err != nil {
		t.Fatalf("directory failed: %v", err)
	}
	if !mr.Exists(storedKey(usecase.DirectoryCacheKey)) {
		t.Fatalf("expected directory to be cached in redis")
	}

	dir, err := uc.Directory(ctx)
	if err != nil {
		t.Fatalf("directory failed: %v", err)
	}
	if id, _ := dir.Resolve(2200); id != testutil.AccountVat {
		t.Fatalf("expected vat account id %d, got %d", testutil.AccountVat, id)
	}
	if accounts.Calls() != 1 {
		t.Fatalf("expected cached read, got %d remote calls", accounts.Calls())
	}

	mr.FastForward(2 * time.Minute)
	if _, err := uc.Directory(ctx); err != nil {
		t.Fatalf("directory failed: %v", err)
	}
	if accounts.Calls() != 2 {
		t.Fatalf("expected reload after ttl, got %d remote calls", accounts.Calls())
	}
}
