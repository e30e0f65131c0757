package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session's transcript in a Redis list so gateway
// replicas share conversations. The list TTL is refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s:history", sessionID)
}

func (r *RedisStore) History(ctx context.Context, sessionID string) ([]string, error) {
	lines, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

func (r *RedisStore) AppendExchange(ctx context.Context, sessionID, userLine, assistantLine string) error {
	key := sessionKey(sessionID)

	if err := r.client.RPush(ctx, key, userLine, assistantLine).Err(); err != nil {
		return fmt.Errorf("failed to append session history: %w", err)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh session TTL: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session history: %w", err)
	}
	return nil
}
