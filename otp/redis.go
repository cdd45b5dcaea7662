package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// RedisStore keeps pending codes in Redis so every instance behind a load
// balancer sees the same entries. The key TTL is only a cleanup margin; the
// authoritative expiry is the timestamp inside the entry.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Put(ctx context.Context, email string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	// Keep the key a minute past the entry's own expiry so an expired
	// verification attempt can still be told apart from a missing one.
	ttl := time.Until(e.ExpiresAt) + time.Minute
	return s.client.Set(ctx, keyPrefix+email, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (Entry, error) {
	data, err := s.client.Get(ctx, keyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNoCode
	}
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}
