package typesense

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typesense/typesense-go/v2/typesense/api"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

const collectionJSON = `{
	"name": "products",
	"fields": [
		{"name": "name", "type": "string", "facet": false, "index": true, "sort": false},
		{"name": "brand_name", "type": "string", "facet": true, "index": true, "sort": false},
		{"name": "price", "type": "float", "facet": false, "index": true},
		{"name": "image_url", "type": "string", "facet": false, "index": false},
		{"name": ".*", "type": "auto", "facet": false}
	],
	"metadata": {"name": "Product name", "price": "Price in EUR", "version": 3}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Header.Get(api.APIKeyHeader) != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Forbidden - a valid x-typesense-api-key header must be sent."}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Config{URL: server.URL + "/", APIKey: "admin"})
	require.NoError(t, err)
	return c, server
}

func TestNewClient_RequiresURLAndKey(t *testing.T) {
	_, err := NewClient(Config{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "index.url")
	assert.Contains(t, err.Error(), "index.api_key")
}

func TestClient_RetrieveCollection(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/products", r.URL.Path)
		_, _ = w.Write([]byte(collectionJSON))
	})

	schema, err := c.RetrieveCollection(context.Background(), "products")

	require.NoError(t, err)
	assert.Equal(t, "products", schema.Name)
	require.Len(t, schema.Fields, 5)
	assert.Equal(t, domain.FieldDescriptor{Name: "name", DataType: "string", IsFilterable: true}, schema.Fields[0])
	assert.True(t, schema.Fields[1].HasFacet)
	assert.True(t, schema.Fields[2].IsSortable, "numeric fields sort by default")
	assert.False(t, schema.Fields[3].IsFilterable)
	assert.True(t, schema.Fields[4].IsFilterable)
	assert.Equal(t, map[string]string{"name": "Product name", "price": "Price in EUR"}, schema.Metadata)
}

func TestClient_RetrieveCollection_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		_, err := c.RetrieveCollection(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, server := newTestServer(t, nil)
		c, err := NewClient(Config{URL: server.URL, APIKey: "search-only"})
		require.NoError(t, err)

		_, err = c.RetrieveCollection(context.Background(), "products")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Contains(t, err.Error(), "Forbidden")
	})
}

func TestClient_FacetSearch(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/products/documents/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("q"))
		assert.Equal(t, "brand_name,color", q.Get("facet_by"))
		assert.Equal(t, "21", q.Get("max_facet_values"))
		assert.Equal(t, "0", q.Get("per_page"))
		_, _ = w.Write([]byte(`{"found":120,"facet_counts":[
			{"field_name":"brand_name","counts":[{"value":"Nike","count":40}]},
			{"field_name":"color","counts":[{"value":"black","count":50},{"value":"white","count":20}]}
		],"hits":[]}`))
	})

	results, err := c.FacetSearch(context.Background(), "products", driven.FacetRequest{
		Fields:    []string{"brand_name", "color"},
		MaxValues: 21,
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "brand_name", results[0].Field)
	assert.Equal(t, []domain.FacetCount{{Value: "Nike", Count: 40}}, results[0].Counts)
	assert.Equal(t, "color", results[1].Field)
	assert.Len(t, results[1].Counts, 2)
}

func TestClient_FacetSearch_AlignsByPosition(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		// Nested fields are reported under a different name.
		_, _ = w.Write([]byte(`{"facet_counts":[
			{"field_name":"variant.size","counts":[{"value":"M","count":9}]},
			{"field_name":"color","counts":[{"value":"red","count":4}]}
		]}`))
	})

	results, err := c.FacetSearch(context.Background(), "products", driven.FacetRequest{
		Fields:    []string{"size", "color"},
		MaxValues: 5,
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "size", results[0].Field)
	assert.Equal(t, []domain.FacetCount{{Value: "M", Count: 9}}, results[0].Counts)
	assert.Equal(t, []domain.FacetCount{{Value: "red", Count: 4}}, results[1].Counts)
}

func TestClient_FacetSearch_CountMismatch(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"facet_counts":[]}`))
	})

	_, err := c.FacetSearch(context.Background(), "products", driven.FacetRequest{Fields: []string{"color"}, MaxValues: 3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 0 facet counts for 1 fields")
}

func TestClient_FacetSearch_ServerError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Could not find a facet field named ` + "`colour`" + ` in the schema."}`))
	})

	_, err := c.FacetSearch(context.Background(), "products", driven.FacetRequest{Fields: []string{"colour"}, MaxValues: 3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "colour")
}

func TestClient_Search(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("q"))
		assert.Equal(t, "name,brand_name", q.Get("query_by"))
		assert.Equal(t, "price:<50", q.Get("filter_by"))
		assert.Equal(t, "price:asc", q.Get("sort_by"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("per_page"))
		_, _ = w.Write([]byte(`{"found":7,"page":2,"hits":[
			{"document":{"product_id":1001,"sku_id":"A-1","name":"Tee","brand_name":"Nike","price":19.9,"stock":"3","color":"black"}}
		]}`))
	})

	resp, err := c.Search(context.Background(), "products", driven.SearchRequest{
		QueryBy:  "name,brand_name",
		FilterBy: "price:<50",
		SortBy:   "price:asc",
		Page:     2,
		PerPage:  5,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Found)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Products, 1)
	p := resp.Products[0]
	assert.Equal(t, "1001", p.ProductID)
	assert.Equal(t, "A-1", p.SkuID)
	assert.Equal(t, "Nike", p.BrandName)
	assert.InDelta(t, 19.9, p.Price, 0.0001)
	assert.InDelta(t, 3.0, p.Stock, 0.0001)
}

func TestClient_Search_OmitsEmptyClauses(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("filter_by"))
		assert.False(t, q.Has("sort_by"))
		assert.Equal(t, "linen", q.Get("q"))
		_, _ = w.Write([]byte(`{"found":0,"page":1,"hits":[]}`))
	})

	resp, err := c.Search(context.Background(), "products", driven.SearchRequest{Q: "linen", QueryBy: "name"})

	require.NoError(t, err)
	assert.Empty(t, resp.Products)
}

func TestClient_Ping(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Ping_Unhealthy(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false}`))
	})

	err := c.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unhealthy")
}

func TestClient_Ping_Unreachable(t *testing.T) {
	_, server := newTestServer(t, nil)
	c, err := NewClient(Config{URL: server.URL, APIKey: "admin", Timeout: time.Second})
	require.NoError(t, err)
	server.Close()

	err = c.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}
