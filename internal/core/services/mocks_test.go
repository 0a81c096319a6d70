package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchIndex implements driven.SearchIndex for testing.
type mockSearchIndex struct {
	schema      *domain.CollectionSchema
	retrieveErr error
	facets      map[string][]domain.FacetCount
	facetErr    error
	searchResp  *driven.SearchResponse
	searchErr   error
	pingErr     error

	// gate, when set, blocks RetrieveCollection until closed.
	gate chan struct{}

	retrieveCalls atomic.Int32
	facetCalls    atomic.Int32

	mu          sync.Mutex
	lastFacet   driven.FacetRequest
	lastSearch  driven.SearchRequest
	collections []string
}

func (m *mockSearchIndex) RetrieveCollection(ctx context.Context, collection string) (*domain.CollectionSchema, error) {
	m.retrieveCalls.Add(1)
	m.mu.Lock()
	m.collections = append(m.collections, collection)
	m.mu.Unlock()
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.schema, nil
}

func (m *mockSearchIndex) FacetSearch(_ context.Context, _ string, req driven.FacetRequest) ([]driven.FacetResult, error) {
	m.facetCalls.Add(1)
	m.mu.Lock()
	m.lastFacet = req
	m.mu.Unlock()
	if m.facetErr != nil {
		return nil, m.facetErr
	}
	results := make([]driven.FacetResult, 0, len(req.Fields))
	for _, f := range req.Fields {
		counts := m.facets[f]
		if len(counts) > req.MaxValues {
			counts = counts[:req.MaxValues]
		}
		results = append(results, driven.FacetResult{Field: f, Counts: counts})
	}
	return results, nil
}

func (m *mockSearchIndex) Search(_ context.Context, _ string, req driven.SearchRequest) (*driven.SearchResponse, error) {
	m.mu.Lock()
	m.lastSearch = req
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.searchResp == nil {
		return &driven.SearchResponse{Page: req.Page}, nil
	}
	return m.searchResp, nil
}

func (m *mockSearchIndex) Ping(_ context.Context) error {
	return m.pingErr
}

// mockGenerator implements driven.StructuredGenerator for testing.
type mockGenerator struct {
	response json.RawMessage
	err      error
	// respond, when set, computes the response from the request.
	respond func(req driven.StructuredRequest) (json.RawMessage, error)

	calls   atomic.Int32
	mu      sync.Mutex
	lastReq driven.StructuredRequest
}

func (m *mockGenerator) GenerateStructured(_ context.Context, req driven.StructuredRequest) (json.RawMessage, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()
	if m.respond != nil {
		return m.respond(req)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockGenerator) ModelName() string {
	return "mock-model"
}

func (m *mockGenerator) Ping(_ context.Context) error {
	return nil
}

func (m *mockGenerator) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	template string
	err      error
}

func (m *mockPromptStore) Load(_ string) (string, error) {
	return m.template, m.err
}

func (m *mockPromptStore) Reload() {}

// mockSnapshotStore implements driven.SnapshotStore for testing.
type mockSnapshotStore struct {
	mu        sync.Mutex
	values    map[string]string
	getErr    error
	setErr    error
	deleteErr error
	sets      int
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{values: make(map[string]string)}
}

func (m *mockSnapshotStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", driven.ErrSnapshotMiss
	}
	return v, nil
}

func (m *mockSnapshotStore) Set(_ context.Context, key, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.values[key] = table
	return nil
}

func (m *mockSnapshotStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

func (m *mockSnapshotStore) Close() error {
	return nil
}

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	saveErr error
}

func (m *mockHistoryStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.HistoryEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *mockHistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			e := m.entries[i]
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryStore) Close() error {
	return nil
}

// --- Fixtures ---

// clothingSchema mirrors the product catalogue collection.
func clothingSchema() *domain.CollectionSchema {
	return &domain.CollectionSchema{
		Name: "products",
		Fields: []domain.FieldDescriptor{
			{Name: "name", DataType: "string", IsFilterable: true},
			{Name: "brand_name", DataType: "string", IsFilterable: true, HasFacet: true},
			{Name: "price", DataType: "float", IsFilterable: true, IsSortable: true},
			{Name: "color", DataType: "string", IsFilterable: true, HasFacet: true},
			{Name: "image_url", DataType: "string"},
		},
		Metadata: map[string]string{
			"name":       "Product name",
			"brand_name": "Brand",
			"price":      "Price in EUR",
			"color":      "Main colour",
		},
	}
}

func clothingFacets() map[string][]domain.FacetCount {
	return map[string][]domain.FacetCount{
		"brand_name": {{Value: "Nike", Count: 40}, {Value: "Adidas", Count: 30}},
		"color":      {{Value: "black", Count: 50}, {Value: "white", Count: 20}, {Value: "red", Count: 5}},
	}
}

func newClothingIndex() *mockSearchIndex {
	return &mockSearchIndex{schema: clothingSchema(), facets: clothingFacets()}
}
