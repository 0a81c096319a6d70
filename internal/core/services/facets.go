package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// facetResolver fetches enumerated values for facetable fields.
type facetResolver struct {
	index     driven.SearchIndex
	maxValues int
}

// resolve issues one wildcard facet search for all fields. Results are
// aligned with fields by position: result i belongs to fields[i]. The call
// is atomic; any failure fails every field.
func (r facetResolver) resolve(
	ctx context.Context, collection string, fields []domain.FieldDescriptor,
) ([]domain.FacetSummary, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	// One extra value shows whether a field exceeds the cap.
	req := driven.FacetRequest{Fields: names, MaxValues: r.maxValues + 1}
	logger.Debug("Facet search: fields=%v, max_facet_values=%d", names, req.MaxValues)

	results, err := r.index.FacetSearch(ctx, collection, req)
	if err != nil {
		return nil, fmt.Errorf("facet search: %w", err)
	}
	if len(results) != len(fields) {
		return nil, fmt.Errorf("facet search: got %d facet results for %d fields", len(results), len(fields))
	}

	summaries := make([]domain.FacetSummary, len(fields))
	for i, f := range fields {
		summaries[i] = domain.NewFacetSummary(f.Name, results[i].Counts, r.maxValues)
		if summaries[i].Overflow {
			logger.Debug("Facet %s exceeds %d values", f.Name, r.maxValues)
		}
	}
	return summaries, nil
}
