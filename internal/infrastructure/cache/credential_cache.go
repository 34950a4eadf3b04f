package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

const credentialKeyPrefix = "tenant:creds:"

// CredentialCache caches resolved tenant credentials in Redis.
type CredentialCache struct {
	client *redis.Client
}

var _ ports.CredentialCache = (*CredentialCache)(nil)

// NewCredentialCache creates a new Redis-backed credential cache
func NewCredentialCache(client *redis.Client) *CredentialCache {
	return &CredentialCache{client: client}
}

// Get returns the cached credentials or (nil, nil) on a miss.
func (c *CredentialCache) Get(ctx context.Context, tenantID string) (*domain.TenantCredentials, error) {
	raw, err := c.client.Get(ctx, credentialKeyPrefix+tenantID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential cache: %w", err)
	}

	var creds domain.TenantCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode cached credentials: %w", err)
	}
	return &creds, nil
}

// Set stores the credentials with the given ttl.
func (c *CredentialCache) Set(ctx context.Context, creds domain.TenantCredentials, ttl time.Duration) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := c.client.Set(ctx, credentialKeyPrefix+creds.TenantID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write credential cache: %w", err)
	}
	return nil
}

// Invalidate drops a tenant's cached credentials.
func (c *CredentialCache) Invalidate(ctx context.Context, tenantID string) error {
	if err := c.client.Del(ctx, credentialKeyPrefix+tenantID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate credential cache: %w", err)
	}
	return nil
}
