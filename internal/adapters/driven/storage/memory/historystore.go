package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// It keeps at most capacity entries, dropping the oldest.
type HistoryStore struct {
	mu       sync.RWMutex
	entries  map[string]domain.HistoryEntry
	capacity int
}

// NewHistoryStore creates a new in-memory history store. A non-positive
// capacity means unbounded.
func NewHistoryStore(capacity int) *HistoryStore {
	return &HistoryStore{
		entries:  make(map[string]domain.HistoryEntry),
		capacity: capacity,
	}
}

// Save records an entry, assigning an ID when it has none.
func (s *HistoryStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	if s.capacity > 0 && len(s.entries) > s.capacity {
		oldest := s.sortedLocked()[len(s.entries)-1]
		delete(s.entries, oldest.ID)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.sortedLocked()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Get returns an entry by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Close is a no-op for the memory store.
func (s *HistoryStore) Close() error {
	return nil
}

// sortedLocked returns entries newest first (caller must hold lock).
func (s *HistoryStore) sortedLocked() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
