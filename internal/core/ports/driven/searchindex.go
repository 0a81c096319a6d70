package driven

import (
	"context"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// SearchIndex is the search engine holding the product collection.
type SearchIndex interface {
	// RetrieveCollection returns the ordered field list and metadata map
	// of the named collection.
	RetrieveCollection(ctx context.Context, collection string) (*domain.CollectionSchema, error)

	// FacetSearch runs a wildcard search aggregating facets for all fields
	// at once. The result is positionally aligned with req.Fields.
	FacetSearch(ctx context.Context, collection string, req FacetRequest) ([]FacetResult, error)

	// Search executes a structured query and returns one page of products.
	Search(ctx context.Context, collection string, req SearchRequest) (*SearchResponse, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error
}

// FacetRequest configures a facet aggregation.
type FacetRequest struct {
	// Fields are the facet field names, in order.
	Fields []string

	// MaxValues is forwarded as the per-field value cap.
	MaxValues int
}

// FacetResult holds the distinct values of one requested facet field.
type FacetResult struct {
	// Field is the field name reported by the index.
	Field string

	// Counts is ordered by descending count.
	Counts []domain.FacetCount
}

// SearchRequest is a structured query ready for execution.
type SearchRequest struct {
	Q        string
	QueryBy  string
	FilterBy string
	SortBy   string
	Page     int
	PerPage  int
}

// SearchResponse is one page of hits.
type SearchResponse struct {
	Found    int
	Page     int
	Products []domain.Product
}
