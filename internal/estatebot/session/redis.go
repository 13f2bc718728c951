package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON blobs in redis with a sliding TTL.
// Useful when several bot instances share the same user base; it carries
// the same ephemerality contract as the in-memory store (TTL expiry wipes
// the session, which is acceptable).
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis-backed session store.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// Corrupt blob: start over rather than poison the dialogue.
		return New(userID), nil
	}
	// Touch the TTL so active dialogues do not expire mid-conversation.
	_ = s.client.Expire(ctx, s.key(userID), s.ttl).Err()
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.UserID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *RedisStore) key(userID string) string {
	return "estatebot:session:" + userID
}
