package driven

import (
	"context"
	"errors"
)

// ErrSnapshotMiss is returned by SnapshotStore.Get when no snapshot exists.
var ErrSnapshotMiss = errors.New("snapshot miss")

// SnapshotStore persists the rendered schema table outside the process,
// so several processes share one introspection and an administrator can
// invalidate it.
type SnapshotStore interface {
	// Get returns the stored table or ErrSnapshotMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the stored table.
	Set(ctx context.Context, key, table string) error

	// Delete removes the stored table. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
