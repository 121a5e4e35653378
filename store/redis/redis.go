// Package redis provides a Redis-backed snapshot store.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/goalchain/chain"
	"github.com/smallnest/goalchain/store"
)

// Store persists snapshots as JSON values under prefixed keys and keeps
// a set of known conversation IDs for List.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix. Default "goalchain:".
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets an expiration on stored snapshots. Default 0 (no
// expiration). Expired snapshots also disappear from List lazily.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewStore wraps an existing Redis client.
func NewStore(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "goalchain:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreAddr connects to the given address and wraps the client.
func NewStoreAddr(addr, password string, db int, opts ...Option) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewStore(client, opts...)
}

func (s *Store) snapshotKey(id string) string {
	return fmt.Sprintf("%sconversation:%s", s.prefix, id)
}

func (s *Store) indexKey() string {
	return s.prefix + "conversations"
}

// Save stores (or replaces) a conversation snapshot.
func (s *Store) Save(ctx context.Context, snap *chain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.snapshotKey(snap.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), snap.ID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.indexKey(), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot to redis: %w", err)
	}
	return nil
}

// Load retrieves the snapshot for a conversation ID.
func (s *Store) Load(ctx context.Context, id string) (*chain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.snapshotKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("load snapshot from redis: %w", err)
	}
	var snap chain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the snapshot for a conversation ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.snapshotKey(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete snapshot from redis: %w", err)
	}
	return nil
}

// List returns the IDs of all stored conversations. IDs whose snapshot
// key expired are pruned from the index as a side effect.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		exists, err := s.client.Exists(ctx, s.snapshotKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("check snapshot key: %w", err)
		}
		if exists == 0 {
			s.client.SRem(ctx, s.indexKey(), id)
			continue
		}
		live = append(live, id)
	}
	return live, nil
}
