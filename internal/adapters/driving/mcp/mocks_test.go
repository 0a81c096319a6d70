package mcp

import (
	"context"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// mockTranslationService is a mock implementation of driving.TranslationService.
type mockTranslationService struct {
	query    *domain.StructuredQuery
	err      error
	lastText string
}

func (m *mockTranslationService) Translate(_ context.Context, text string) (*domain.StructuredQuery, error) {
	m.lastText = text
	return m.query, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result   *domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

// mockIntrospectionService is a mock implementation of driving.IntrospectionService.
type mockIntrospectionService struct {
	table string
	err   error
}

func (m *mockIntrospectionService) SchemaTable(_ context.Context) (string, error) {
	return m.table, m.err
}

func (m *mockIntrospectionService) SchemaTableUncached(_ context.Context) (string, error) {
	return m.table, m.err
}

func (m *mockIntrospectionService) Invalidate(_ context.Context) error {
	return m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
