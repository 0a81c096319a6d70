// Package typesense provides a SearchIndex adapter over the official
// Typesense Go client.
package typesense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ts "github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchIndex = (*Client)(nil)

// DefaultTimeout is the request timeout when none is configured.
const DefaultTimeout = 5 * time.Second

// Config holds configuration for the Typesense client.
type Config struct {
	// URL is the node base URL, e.g. http://localhost:8108 (required).
	URL string

	// APIKey is the admin API key (required). Schema retrieval needs
	// admin rights.
	APIKey string

	// Timeout is the request timeout (default: 5s).
	Timeout time.Duration
}

// Client talks to a single Typesense node.
type Client struct {
	raw     *api.ClientWithResponses
	client  *ts.Client
	timeout time.Duration
}

// collectionMetadata is the part of GET /collections/{name} that the
// generated response type does not carry.
type collectionMetadata struct {
	Metadata map[string]any `json:"metadata"`
}

// NewClient creates a Typesense client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		var missing []string
		if cfg.URL == "" {
			missing = append(missing, "index.url")
		}
		if cfg.APIKey == "" {
			missing = append(missing, "index.api_key")
		}
		return nil, domain.NewConfigurationError(missing...)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	raw, err := api.NewClientWithResponses(strings.TrimRight(cfg.URL, "/"),
		api.WithAPIKey(cfg.APIKey),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	if err != nil {
		return nil, fmt.Errorf("typesense: create client: %w", err)
	}

	return &Client{
		raw:     raw,
		client:  ts.NewClient(ts.WithAPIClient(raw)),
		timeout: cfg.Timeout,
	}, nil
}

// RetrieveCollection returns the ordered fields and metadata of a collection.
func (c *Client) RetrieveCollection(ctx context.Context, collection string) (*domain.CollectionSchema, error) {
	start := time.Now()
	resp, err := c.raw.GetCollectionWithResponse(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("typesense: retrieve collection: %w", err)
	}
	logger.Debug("Retrieve collection %s -> %d in %s", collection, resp.StatusCode(), time.Since(start))
	if resp.JSON200 == nil {
		return nil, statusError(&ts.HTTPError{Status: resp.StatusCode(), Body: resp.Body})
	}

	var meta collectionMetadata
	if err := json.Unmarshal(resp.Body, &meta); err != nil {
		return nil, fmt.Errorf("typesense: decode collection metadata: %w", err)
	}

	schema := &domain.CollectionSchema{
		Name:     resp.JSON200.Name,
		Fields:   make([]domain.FieldDescriptor, 0, len(resp.JSON200.Fields)),
		Metadata: make(map[string]string, len(meta.Metadata)),
	}
	for _, f := range resp.JSON200.Fields {
		schema.Fields = append(schema.Fields, domain.FieldDescriptor{
			Name:         f.Name,
			DataType:     f.Type,
			IsFilterable: f.Index == nil || *f.Index,
			IsSortable:   sortable(f),
			HasFacet:     f.Facet != nil && *f.Facet,
		})
	}
	for k, v := range meta.Metadata {
		if s, ok := v.(string); ok {
			schema.Metadata[k] = s
		}
	}
	return schema, nil
}

// sortable applies the index's default when the flag is absent: numeric
// fields sort, strings do not.
func sortable(f api.Field) bool {
	if f.Sort != nil {
		return *f.Sort
	}
	switch f.Type {
	case "int32", "int64", "float", "bool":
		return true
	default:
		return false
	}
}

// FacetSearch runs one wildcard search with facet_by listing every field.
// No hits are fetched. facet_counts[i] belongs to req.Fields[i].
func (c *Client) FacetSearch(ctx context.Context, collection string, req driven.FacetRequest) ([]driven.FacetResult, error) {
	params := &api.SearchCollectionParams{
		Q:              pointer.String("*"),
		FacetBy:        pointer.String(strings.Join(req.Fields, ",")),
		MaxFacetValues: pointer.Int(req.MaxValues),
		PerPage:        pointer.Int(0),
	}

	resp, err := c.search(ctx, collection, params)
	if err != nil {
		return nil, err
	}

	var facets []api.FacetCounts
	if resp.FacetCounts != nil {
		facets = *resp.FacetCounts
	}
	if len(facets) != len(req.Fields) {
		return nil, fmt.Errorf("typesense: got %d facet counts for %d fields", len(facets), len(req.Fields))
	}

	results := make([]driven.FacetResult, len(facets))
	for i, fc := range facets {
		name := req.Fields[i]
		if fc.FieldName != nil && *fc.FieldName != name {
			logger.Debug("Facet %d reported as %s, requested %s", i, *fc.FieldName, name)
		}
		var counts []domain.FacetCount
		if fc.Counts != nil {
			counts = make([]domain.FacetCount, 0, len(*fc.Counts))
			for _, cnt := range *fc.Counts {
				counts = append(counts, domain.FacetCount{Value: deref(cnt.Value), Count: derefInt(cnt.Count)})
			}
		}
		results[i] = driven.FacetResult{Field: name, Counts: counts}
	}
	return results, nil
}

// Search executes a structured query.
func (c *Client) Search(ctx context.Context, collection string, req driven.SearchRequest) (*driven.SearchResponse, error) {
	q := req.Q
	if q == "" {
		q = "*"
	}
	params := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String(req.QueryBy),
	}
	if req.FilterBy != "" {
		params.FilterBy = pointer.String(req.FilterBy)
	}
	if req.SortBy != "" {
		params.SortBy = pointer.String(req.SortBy)
	}
	if req.Page > 0 {
		params.Page = pointer.Int(req.Page)
	}
	if req.PerPage > 0 {
		params.PerPage = pointer.Int(req.PerPage)
	}

	resp, err := c.search(ctx, collection, params)
	if err != nil {
		return nil, err
	}

	out := &driven.SearchResponse{
		Found: derefInt(resp.Found),
		Page:  derefInt(resp.Page),
	}
	if resp.Hits != nil {
		out.Products = make([]domain.Product, 0, len(*resp.Hits))
		for _, h := range *resp.Hits {
			if h.Document != nil {
				out.Products = append(out.Products, productFromDocument(*h.Document))
			}
		}
	}
	return out, nil
}

// Ping checks the /health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	ok, err := c.client.Health(ctx, c.timeout)
	if err != nil {
		return statusError(err)
	}
	if !ok {
		return errors.New("typesense: node reports unhealthy")
	}
	return nil
}

func (c *Client) search(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error) {
	start := time.Now()
	resp, err := c.client.Collection(collection).Documents().Search(ctx, params)
	logger.Debug("Search %s in %s", collection, time.Since(start))
	if err != nil {
		return nil, statusError(err)
	}
	return resp, nil
}

// statusError turns a non-200 response into an error carrying the
// server's message. A 404 wraps domain.ErrNotFound.
func statusError(err error) error {
	var httpErr *ts.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("typesense: send request: %w", err)
	}

	msg := string(httpErr.Body)
	var body api.ApiResponse
	if json.Unmarshal(httpErr.Body, &body) == nil && body.Message != "" {
		msg = body.Message
	}
	if httpErr.Status == http.StatusNotFound {
		return fmt.Errorf("typesense: %w: %s", domain.ErrNotFound, msg)
	}
	return fmt.Errorf("typesense: status %d: %s", httpErr.Status, msg)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
