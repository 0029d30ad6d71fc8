package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token resolves to no live session, either
// because it never existed or because it expired.
var ErrNotFound = errors.New("session: not found")

// Record is the stored form of a session.
type Record struct {
	Values    map[string]any `json:"values"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Store persists session records keyed by token.
type Store interface {
	// TTL is the configured inactivity window.
	TTL() time.Duration
	// Get resolves a token. Expired or missing records return ErrNotFound.
	Get(ctx context.Context, token string) (*Record, error)
	// Save writes the full record and resets the inactivity window to ttl.
	Save(ctx context.Context, token string, values map[string]any, ttl time.Duration) error
	// Touch slides the inactivity window without rewriting the record.
	Touch(ctx context.Context, token string, ttl time.Duration) error
	// Delete removes a record. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis. Every Save writes the whole record
// with SET+EX, so the upsert and the expiry refresh are a single atomic
// command; concurrent writers to one token are last-write-wins at record
// granularity.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) TTL() time.Duration { return s.ttl }

func (s *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	// Redis expires the key on its own, but the record carries its deadline
	// too so a lagging eviction can never resurrect a dead session.
	if !rec.ExpiresAt.After(time.Now()) {
		_ = s.rdb.Del(ctx, keyPrefix+token).Err()
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, values map[string]any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	rec := Record{Values: values, ExpiresAt: time.Now().Add(ttl)}
	raw, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, raw, ttl).Err()
}

// Touch reloads the record, pushes its deadline forward, and writes it back.
// Touching an absent or expired token is a no-op.
func (s *RedisStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	rec, err := s.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.Save(ctx, token, rec.Values, ttl)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

var _ Store = (*RedisStore)(nil)
