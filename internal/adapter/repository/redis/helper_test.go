package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/gojournal/internal/usecase"
)

var (
	_ usecase.AccountCache     = (*AccountCache)(nil)
	_ usecase.IdempotencyCache = (*IdempotencyCache)(nil)
)

// newTestRedisClient starts an in-process server torn down with the test.
// The returned server lets tests fast-forward TTLs or force errors.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return client, srv
}
