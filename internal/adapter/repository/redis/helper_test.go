package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestCache returns a directory cache backed by a fresh miniredis server. Retries are
// off so a stopped server fails the first command.
func newTestCache(t *testing.T, recorder CacheRecorder) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, recorder), mr
}

// storedKey is the redis key a cache key lands under.
func storedKey(key string) string {
	return "ledgerclient:" + key
}
