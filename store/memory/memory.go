// Package memory provides an in-process snapshot store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/smallnest/goalchain/chain"
	"github.com/smallnest/goalchain/store"
)

// Store keeps snapshots in a map. Snapshots are copied through JSON on
// the way in and out, so callers never share state with the store.
type Store struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

var _ store.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{snaps: make(map[string][]byte)}
}

// Save stores (or replaces) a conversation snapshot.
func (s *Store) Save(ctx context.Context, snap *chain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = data
	return nil
}

// Load retrieves the snapshot for a conversation ID.
func (s *Store) Load(ctx context.Context, id string) (*chain.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.snaps[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	var snap chain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the snapshot for a conversation ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

// List returns the IDs of all stored conversations, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.snaps))
	for id := range s.snaps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
