package store

import (
	"context"
	"errors"

	"github.com/smallnest/goalchain/chain"
)

// ErrNotFound is returned when no snapshot exists for a conversation ID.
var ErrNotFound = errors.New("store: conversation not found")

// Store persists conversation snapshots so a conversation can resume in
// another process. Implementations must treat Save as an upsert keyed by
// the snapshot's conversation ID.
type Store interface {
	// Save stores (or replaces) a conversation snapshot.
	Save(ctx context.Context, snap *chain.Snapshot) error

	// Load retrieves the snapshot for a conversation ID.
	Load(ctx context.Context, id string) (*chain.Snapshot, error)

	// Delete removes the snapshot for a conversation ID. Deleting an
	// unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored conversations.
	List(ctx context.Context) ([]string, error)
}
