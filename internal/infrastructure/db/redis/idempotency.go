package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL bounds how long a retry key replays its record.
const DefaultIdempotencyTTL = 24 * time.Hour

// A reservation that is never completed or released, because the process
// died mid-create, frees the key after reservationTTL.
const (
	pendingMarker  = "pending"
	reservationTTL = 30 * time.Second
)

// IdempotencyStore maps client retry keys to the id of the record they created.
// Key format: idem:<entity>:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SET NX. Of two concurrent requests only one wins;
// the other sees the pending marker, or the record id once the winner completes.
func (s *IdempotencyStore) Reserve(ctx context.Context, entity, key string) (string, bool, error) {
	k := idempotencyKey(entity, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, reservationTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// released or expired between SETNX and GET; still contended
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if id == pendingMarker {
		return "", false, nil
	}
	return id, false, nil
}

// Complete replaces the reservation with the created record id.
func (s *IdempotencyStore) Complete(ctx context.Context, entity, key, id string) error {
	if err := s.client.Set(ctx, idempotencyKey(entity, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose create failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, entity, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(entity, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(entity, key string) string {
	return fmt.Sprintf("idem:%s:%s", entity, key)
}

// NoopStore is used when Redis is not configured. Every key is reserved and
// nothing is ever replayed.
type NoopStore struct{}

func (NoopStore) Reserve(context.Context, string, string) (string, bool, error) { return "", true, nil }

func (NoopStore) Complete(context.Context, string, string, string) error { return nil }

func (NoopStore) Release(context.Context, string, string) error { return nil }
