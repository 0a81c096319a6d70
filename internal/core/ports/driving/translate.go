package driving

import (
	"context"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// TranslationService converts free text into a structured query.
type TranslationService interface {
	// Translate returns a StructuredQuery or a *domain.QueryError, never both.
	// ctx bounds the whole call, including the model round trip.
	Translate(ctx context.Context, text string) (*domain.StructuredQuery, error)
}

// IntrospectionService exposes the schema description shown to the model.
type IntrospectionService interface {
	// SchemaTable returns the cached table, computing it on first use.
	SchemaTable(ctx context.Context) (string, error)

	// SchemaTableUncached recomputes the table, bypassing every cache.
	SchemaTableUncached(ctx context.Context) (string, error)

	// Invalidate drops the cached table locally and in the shared store.
	Invalidate(ctx context.Context) error
}

// SearchService translates free text and executes the result.
type SearchService interface {
	// Search translates text and runs the structured query against the index.
	Search(ctx context.Context, text string, opts domain.SearchOptions) (*domain.SearchResult, error)
}

// HistoryService lists past translations.
type HistoryService interface {
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get returns one entry by ID.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)
}

// HealthService checks the collaborators the pipeline depends on.
type HealthService interface {
	// Check pings every collaborator and returns one entry per component.
	// A nil value means the component is healthy.
	Check(ctx context.Context) map[string]error
}
