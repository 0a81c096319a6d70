package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

func TestHistoryService_Recent(t *testing.T) {
	store := &mockHistoryStore{}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(context.Background(), domain.HistoryEntry{ID: id}))
	}
	svc := NewHistoryService(store)

	entries, err := svc.Recent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)

	entries, err = svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestHistoryService_Get(t *testing.T) {
	store := &mockHistoryStore{}
	require.NoError(t, store.Save(context.Background(), domain.HistoryEntry{ID: "a", Text: "shirts"}))
	svc := NewHistoryService(store)

	entry, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "shirts", entry.Text)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_NilStore(t *testing.T) {
	svc := NewHistoryService(nil)

	entries, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.Get(context.Background(), "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
