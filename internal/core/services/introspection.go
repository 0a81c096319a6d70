package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// Ensure IntrospectionService implements the interface.
var _ driving.IntrospectionService = (*IntrospectionService)(nil)

// IntrospectionService describes the collection schema to the model and
// memoizes the result for the lifetime of the process.
//
// Concurrent first callers share a single computation. Once set, the
// cached table is only replaced after Invalidate. A computation that
// was in flight when Invalidate ran does not populate the cache.
type IntrospectionService struct {
	index      driven.SearchIndex
	snapshots  driven.SnapshotStore
	collection string
	resolver   facetResolver

	mu    sync.RWMutex
	table string
	ready bool
	gen   uint64

	group singleflight.Group
}

// NewIntrospectionService creates an introspection service for one
// collection. A non-positive maxFacetValues falls back to the default.
func NewIntrospectionService(
	index driven.SearchIndex, collection string, maxFacetValues int,
) *IntrospectionService {
	if maxFacetValues <= 0 {
		maxFacetValues = domain.DefaultMaxFacetValues
	}
	return &IntrospectionService{
		index:      index,
		collection: collection,
		resolver:   facetResolver{index: index, maxValues: maxFacetValues},
	}
}

// SetSnapshotStore shares the computed table with other processes.
// The store is optional; failures reading or writing it are logged and
// the service falls back to computing locally.
func (s *IntrospectionService) SetSnapshotStore(store driven.SnapshotStore) {
	s.snapshots = store
}

// SchemaTable returns the cached schema table, computing it on first use.
func (s *IntrospectionService) SchemaTable(ctx context.Context) (string, error) {
	if table, ok := s.cached(); ok {
		logger.Debug("Introspection cache hit")
		return table, nil
	}

	// The computation is shared, so it must outlive any single caller.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.snapshotKey(), func() (any, error) {
		table, ok, gen := s.cachedGen()
		if ok {
			return table, nil
		}
		logger.Debug("Introspection cache miss")
		if table, ok := s.loadSnapshot(shared); ok {
			s.store(table, gen)
			return table, nil
		}
		table, err := s.compute(shared)
		if err != nil {
			return "", err
		}
		if s.store(table, gen) {
			s.saveSnapshot(shared, table)
		}
		return table, nil
	})

	select {
	case <-ctx.Done():
		return "", domain.NewIntrospectionError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", asIntrospectionError(res.Err)
		}
		table, _ := res.Val.(string)
		return table, nil
	}
}

// SchemaTableUncached recomputes the table without reading or writing any
// cache. Intended for development and debugging.
func (s *IntrospectionService) SchemaTableUncached(ctx context.Context) (string, error) {
	table, err := s.compute(ctx)
	if err != nil {
		return "", asIntrospectionError(err)
	}
	return table, nil
}

// Invalidate drops the cached table. The next SchemaTable call recomputes.
func (s *IntrospectionService) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.table = ""
	s.ready = false
	s.gen++
	s.mu.Unlock()
	s.group.Forget(s.snapshotKey())

	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.Delete(ctx, s.snapshotKey()); err != nil {
		return fmt.Errorf("delete schema snapshot: %w", err)
	}
	return nil
}

// compute builds the table: plain rows first, then facetable rows, each
// group in declaration order.
func (s *IntrospectionService) compute(ctx context.Context) (string, error) {
	logger.Section("Schema Introspection")

	schema, err := s.index.RetrieveCollection(ctx, s.collection)
	if err != nil {
		return "", fmt.Errorf("retrieve collection %q: %w", s.collection, err)
	}

	part := partitionFields(schema)
	logger.Debug("Collection %s: %d plain, %d facetable, %d skipped fields",
		s.collection, len(part.plain), len(part.facetable), len(part.skipped))

	summaries, err := s.resolver.resolve(ctx, s.collection, part.facetable)
	if err != nil {
		return "", err
	}

	rows := part.plainRows()
	for i, f := range part.facetable {
		rows = append(rows, renderFacetRow(f, summaries[i]))
	}
	return strings.Join(rows, "\n"), nil
}

func (s *IntrospectionService) cached() (string, bool) {
	table, ok, _ := s.cachedGen()
	return table, ok
}

func (s *IntrospectionService) cachedGen() (string, bool, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.ready, s.gen
}

// store caches table unless Invalidate ran since gen was read.
func (s *IntrospectionService) store(table string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		logger.Debug("Schema table invalidated during computation, not cached")
		return false
	}
	s.table = table
	s.ready = true
	return true
}

func (s *IntrospectionService) snapshotKey() string {
	return "schema:" + s.collection
}

func (s *IntrospectionService) loadSnapshot(ctx context.Context) (string, bool) {
	if s.snapshots == nil {
		return "", false
	}
	table, err := s.snapshots.Get(ctx, s.snapshotKey())
	if err != nil {
		if !errors.Is(err, driven.ErrSnapshotMiss) {
			logger.Warn("Schema snapshot read failed: %v", err)
		}
		return "", false
	}
	logger.Debug("Schema snapshot loaded from shared store")
	return table, true
}

func (s *IntrospectionService) saveSnapshot(ctx context.Context, table string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Set(ctx, s.snapshotKey(), table); err != nil {
		logger.Warn("Schema snapshot write failed: %v", err)
	}
}
