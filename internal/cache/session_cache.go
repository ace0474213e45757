// Package cache holds Redis-backed lookups that sit in front of Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easeaico/zetazen/internal/types"
)

const sessionKeyPrefix = "zetazen:session:anon:"

// SessionCache stores sessions by anon id with a TTL.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache returns a SessionCache. A non-positive ttl means 10 minutes.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SessionCache{client: client, ttl: ttl}
}

func (c *SessionCache) Get(ctx context.Context, anonID string) (*types.Session, error) {
	raw, err := c.client.Get(ctx, sessionKey(anonID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached session: %w", err)
	}
	var sess types.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}
	return &sess, nil
}

func (c *SessionCache) Set(ctx context.Context, sess *types.Session) error {
	if sess == nil {
		return fmt.Errorf("session cannot be nil")
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := c.client.Set(ctx, sessionKey(sess.AnonID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, anonID string) error {
	if err := c.client.Del(ctx, sessionKey(anonID)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached session: %w", err)
	}
	return nil
}

func sessionKey(anonID string) string {
	return sessionKeyPrefix + anonID
}
