package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

func TestAccountCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewAccountCache(client, time.Minute)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	account := &domain.Account{
		ID:               "acc-1",
		Name:             "Cash",
		Currency:         "USD",
		Type:             domain.AccountTypeAsset,
		Status:           domain.AccountStatusActive,
		CashFlowCategory: domain.CashFlowOperating,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := cache.Set(ctx, account); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "acc-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cached account")
	}
	if got.Name != "Cash" || got.Type != domain.AccountTypeAsset || got.CashFlowCategory != domain.CashFlowOperating {
		t.Fatalf("unexpected account: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestAccountCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	got, err := NewAccountCache(client, time.Minute).Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestAccountCacheDeleteAndExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewAccountCache(client, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, &domain.Account{ID: "a"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := cache.Get(ctx, "a"); got != nil {
		t.Fatalf("expected deleted account to miss")
	}

	if err := cache.Set(ctx, &domain.Account{ID: "b"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if got, _ := cache.Get(ctx, "b"); got != nil {
		t.Fatalf("expected expired account to miss")
	}
}

func TestAccountCacheCorruptValue(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set("account:bad", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := NewAccountCache(client, time.Minute).Get(context.Background(), "bad"); err == nil {
		t.Fatalf("expected decode error")
	}
}
