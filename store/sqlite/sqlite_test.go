package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smallnest/goalchain/chain"
	"github.com/smallnest/goalchain/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Options{Path: ":memory:"})
	assert.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func snapshot(id string) *chain.Snapshot {
	return &chain.Snapshot{
		ID:         id,
		ActiveGoal: "product_order",
		Data:       map[string]any{"quantity": 3.0},
		Sessions: map[string]chain.GoalSnapshot{
			"product_order": {
				Messages: []chain.Message{
					{Actor: chain.ActorUser, Content: "3 widgets"},
				},
				Started: true,
			},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, snapshot("conv-1")))

	loaded, err := s.Load(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Equal(t, "conv-1", loaded.ID)
	assert.Equal(t, 3.0, loaded.Data["quantity"])
	assert.Len(t, loaded.Sessions["product_order"].Messages, 1)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, snapshot("conv-1")))

	updated := snapshot("conv-1")
	updated.Data["quantity"] = 50.0
	assert.NoError(t, s.Save(ctx, updated))

	loaded, err := s.Load(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Equal(t, 50.0, loaded.Data["quantity"])

	ids, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"conv-1"}, ids)
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSQLiteStore_DeleteAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, snapshot("conv-b")))
	assert.NoError(t, s.Save(ctx, snapshot("conv-a")))

	ids, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"conv-a", "conv-b"}, ids)

	assert.NoError(t, s.Delete(ctx, "conv-b"))
	ids, err = s.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"conv-a"}, ids)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")
	ctx := context.Background()

	s, err := NewStore(Options{Path: path})
	assert.NoError(t, err)
	assert.NoError(t, s.Save(ctx, snapshot("conv-1")))
	assert.NoError(t, s.Close())

	reopened, err := NewStore(Options{Path: path})
	assert.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Equal(t, "conv-1", loaded.ID)
}
