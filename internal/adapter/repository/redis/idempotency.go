package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gojournal/internal/domain"
)

// IdempotencyCache implements usecase.IdempotencyCache using Redis. It only
// ever holds records already committed to storage.
type IdempotencyCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewIdempotencyCache creates a new IdempotencyCache.
func NewIdempotencyCache(client *redis.Client, ttl time.Duration) *IdempotencyCache {
	return &IdempotencyCache{
		client: client,
		prefix: "idempotency:",
		ttl:    ttl,
	}
}

type cachedRecord struct {
	RequestHash   string    `json:"request_hash"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Get returns the cached record for key, or nil on a miss.
func (c *IdempotencyCache) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var v cachedRecord
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	return &domain.IdempotencyRecord{
		Key:           key,
		RequestHash:   v.RequestHash,
		TransactionID: v.TransactionID,
		CreatedAt:     v.CreatedAt,
	}, nil
}

// Set stores record unless the key is already cached.
func (c *IdempotencyCache) Set(ctx context.Context, record *domain.IdempotencyRecord) error {
	data, err := json.Marshal(cachedRecord{
		RequestHash:   record.RequestHash,
		TransactionID: record.TransactionID,
		CreatedAt:     record.CreatedAt,
	})
	if err != nil {
		return err
	}

	return c.client.SetNX(ctx, c.prefix+record.Key, data, c.ttl).Err()
}
