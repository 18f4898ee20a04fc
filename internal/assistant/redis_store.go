package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPattern = "session:state:%s"

// RedisStore persists conversation state in Redis. Keys carry a TTL, so idle
// sessions are evicted by Redis itself and no sweep is needed.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
	ttl    time.Duration
}

// NewRedisStore initializes a Redis-backed Store implementation.
func NewRedisStore(client *redis.Client, log *slog.Logger, ttl time.Duration) *RedisStore {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisStore{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

// Get returns the stored conversation or ErrSessionNotFound when absent.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Conversation, error) {
	key := sessionKey(sessionID)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}

		s.log.Error("failed to get conversation from redis", "session_id", sessionID, "error", err)
		return nil, err
	}

	var conv Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		s.log.Error("failed to decode conversation", "session_id", sessionID, "error", err)
		return nil, err
	}

	return &conv, nil
}

// Set saves the conversation with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID string, conv *Conversation) error {
	conv.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(conv)
	if err != nil {
		s.log.Error("failed to encode conversation", "session_id", sessionID, "error", err)
		return err
	}

	key := sessionKey(sessionID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Error("failed to save conversation in redis", "session_id", sessionID, "error", err)
		return err
	}

	return nil
}

// Clear removes the stored conversation for the given session id.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Error("failed to clear conversation", "session_id", sessionID, "error", err)
		return err
	}

	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(sessionKeyPattern, sessionID)
}
