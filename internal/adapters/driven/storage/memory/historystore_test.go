package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store := NewHistoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: "a", Text: "shirts"}))

	entry, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "shirts", entry.Text)
	assert.False(t, entry.CreatedAt.IsZero())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ListNewestFirst(t *testing.T) {
	store := NewHistoryStore(0)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)
}

func TestHistoryStore_CapacityDropsOldest(t *testing.T) {
	store := NewHistoryStore(2)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryStore_AssignsID(t *testing.T) {
	store := NewHistoryStore(0)

	require.NoError(t, store.Save(context.Background(), domain.HistoryEntry{Text: "x"}))

	entries, err := store.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
}
