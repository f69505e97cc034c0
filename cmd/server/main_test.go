package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/gojournal/internal/adapter/repository/postgres"
	"github.com/iho/gojournal/internal/infrastructure/config"
	"github.com/iho/gojournal/internal/infrastructure/eventpublisher"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver:       config.StorageMemory,
		HTTPPort:            "0",
		HTTPShutdownTimeout: time.Second,
		OutboxEnabled:       true,
		OutboxBatchSize:     10,
		OutboxInterval:      10 * time.Millisecond,
	}
}

func TestNewStorageMemory(t *testing.T) {
	store, err := newStorage(context.Background(), memoryConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("newStorage failed: %v", err)
	}
	defer store.close()

	if store.retrier != nil {
		t.Fatal("memory storage should not retry")
	}
	if len(store.checks) != 0 {
		t.Fatalf("expected no readiness checks, got %d", len(store.checks))
	}
	if _, ok := store.outbox.(*postgresRepo.NullOutboxRepository); ok {
		t.Fatal("expected a real outbox when enabled")
	}
}

func TestOutboxDisabledUsesNullRepository(t *testing.T) {
	cfg := memoryConfig()
	cfg.OutboxEnabled = false

	store, err := newStorage(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newStorage failed: %v", err)
	}

	if _, ok := store.outbox.(*postgresRepo.NullOutboxRepository); !ok {
		t.Fatalf("expected null outbox, got %T", store.outbox)
	}
}

func TestNewStoragePostgresFailsOnBadURL(t *testing.T) {
	cfg := &config.Config{
		StorageDriver:   config.StoragePostgres,
		DatabaseURL:     "://bad",
		DatabaseTimeout: time.Second,
	}

	if _, err := newStorage(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestNewPublisherSelection(t *testing.T) {
	cfg := memoryConfig()

	pub, closeFn := newPublisher(cfg, zerolog.Nop())
	if _, ok := pub.(*eventpublisher.LogPublisher); !ok {
		t.Fatalf("expected log publisher without brokers, got %T", pub)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	cfg.KafkaBrokers = []string{"localhost:9092"}
	cfg.KafkaTopic = "ledger.events"
	pub, closeFn = newPublisher(cfg, zerolog.Nop())
	if _, ok := pub.(*eventpublisher.KafkaPublisher); !ok {
		t.Fatalf("expected kafka publisher with brokers, got %T", pub)
	}
	_ = closeFn()
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, memoryConfig(), zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
