package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

func TestIdempotencyCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewIdempotencyCache(client, time.Hour)
	ctx := context.Background()

	rec := &domain.IdempotencyRecord{Key: "order-1", RequestHash: "abc", TransactionID: "tx-1", CreatedAt: time.Now().UTC()}
	if err := cache.Set(ctx, rec); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.TransactionID != "tx-1" || got.RequestHash != "abc" || got.Key != "order-1" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if ttl := mr.TTL("idempotency:order-1"); ttl != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", ttl)
	}
}

func TestIdempotencyCacheKeepsFirstRecord(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewIdempotencyCache(client, time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, &domain.IdempotencyRecord{Key: "k", RequestHash: "h1", TransactionID: "tx-1"})
	_ = cache.Set(ctx, &domain.IdempotencyRecord{Key: "k", RequestHash: "h2", TransactionID: "tx-2"})

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TransactionID != "tx-1" {
		t.Fatalf("expected first record to win, got %s", got.TransactionID)
	}
}

func TestIdempotencyCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	got, err := NewIdempotencyCache(client, time.Hour).Get(context.Background(), "none")
	if err != nil || got != nil {
		t.Fatalf("expected clean miss, got %+v err=%v", got, err)
	}
}
