package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gojournal/internal/domain"
)

// AccountCache implements usecase.AccountCache using Redis.
type AccountCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewAccountCache creates a new AccountCache whose entries expire after ttl.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{
		client: client,
		prefix: "account:",
		ttl:    ttl,
	}
}

type cachedAccount struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Currency         string    `json:"currency"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	CashFlowCategory string    `json:"cash_flow_category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Get returns the cached account, or nil on a miss.
func (c *AccountCache) Get(ctx context.Context, id string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var v cachedAccount
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:               v.ID,
		Name:             v.Name,
		Currency:         v.Currency,
		Type:             domain.AccountType(v.Type),
		Status:           domain.AccountStatus(v.Status),
		CashFlowCategory: domain.CashFlowCategory(v.CashFlowCategory),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}, nil
}

// Set stores account with the cache TTL.
func (c *AccountCache) Set(ctx context.Context, account *domain.Account) error {
	data, err := json.Marshal(cachedAccount{
		ID:               account.ID,
		Name:             account.Name,
		Currency:         account.Currency,
		Type:             string(account.Type),
		Status:           string(account.Status),
		CashFlowCategory: string(account.CashFlowCategory),
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.prefix+account.ID, data, c.ttl).Err()
}

// Delete removes an account from the cache.
func (c *AccountCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.prefix+id).Err()
}
