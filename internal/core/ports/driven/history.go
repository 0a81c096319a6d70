package driven

import (
	"context"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// HistoryStore persists translation attempts.
type HistoryStore interface {
	// Save records an entry.
	Save(ctx context.Context, entry domain.HistoryEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get returns an entry by ID or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// Close releases resources.
	Close() error
}
