package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const defaultPerPage = 10

// SearchService translates text and runs the result against the collection.
type SearchService struct {
	translator driving.TranslationService
	index      driven.SearchIndex
	collection string
	queryBy    string
}

// NewSearchService creates a search service. An empty queryBy falls back
// to the catalogue's text fields.
func NewSearchService(
	translator driving.TranslationService, index driven.SearchIndex, collection, queryBy string,
) *SearchService {
	if queryBy == "" {
		queryBy = domain.DefaultQueryBy
	}
	return &SearchService{
		translator: translator,
		index:      index,
		collection: collection,
		queryBy:    queryBy,
	}
}

// Search translates text, then executes the structured query. Translation
// failures are returned unchanged so callers can inspect their kind.
func (s *SearchService) Search(
	ctx context.Context, text string, opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	q, err := s.translator.Translate(ctx, text)
	if err != nil {
		return nil, err
	}

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}

	logger.Section("Search")
	logger.Debug("q=%q query_by=%q filter_by=%q sort_by=%q page=%d",
		q.SearchText(), s.queryBy, q.FilterBy, q.SortBy, opts.Page)

	resp, err := s.index.Search(ctx, s.collection, driven.SearchRequest{
		Q:        q.SearchText(),
		QueryBy:  s.queryBy,
		FilterBy: q.FilterBy,
		SortBy:   q.SortBy,
		Page:     opts.Page,
		PerPage:  opts.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	products := resp.Products
	if products == nil {
		products = []domain.Product{}
	}
	return &domain.SearchResult{
		Query:    *q,
		Found:    resp.Found,
		Page:     resp.Page,
		Products: products,
	}, nil
}
