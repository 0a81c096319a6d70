package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

func TestNewGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(Config{})
	require.Error(t, err)

	g, err := NewGenerator(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.ModelName())
}

func TestGenerator_GenerateStructured(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"sort_by\":\"price:asc\",\"query\":null,\"filter_by\":null}"}}]}`))
	}))
	defer server.Close()

	g, err := NewGenerator(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	raw, err := g.GenerateStructured(context.Background(), driven.StructuredRequest{
		SystemInstruction: "system",
		Prompt:            "cheapest",
		SchemaName:        "typesense_query",
		Schema:            domain.StructuredQuerySchema(),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"sort_by":"price:asc","query":null,"filter_by":null}`, string(raw))
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "cheapest", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.ElementsMatch(t, []any{"query", "filter_by", "sort_by"}, got.ResponseFormat.JSONSchema.Schema["required"])
}

func TestGenerator_GenerateStructured_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	g, err := NewGenerator(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	raw, err := g.GenerateStructured(context.Background(), driven.StructuredRequest{})

	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestGenerator_GenerateStructured_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"invalid key"}}`, "invalid key"},
		{"refusal", http.StatusOK, `{"choices":[{"message":{"refusal":"no"}}]}`, "refused"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no response choices"},
		{"bad status", http.StatusBadGateway, `{}`, "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g, err := NewGenerator(Config{APIKey: "sk-test", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = g.GenerateStructured(context.Background(), driven.StructuredRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStrictSchema_DoesNotMutateInput(t *testing.T) {
	in := domain.StructuredQuerySchema()
	out := strictSchema(in)

	_, hasRequired := in["required"]
	assert.False(t, hasRequired)
	assert.Equal(t, []string{"filter_by", "query", "sort_by"}, out["required"])
}

func TestGenerator_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	g, err := NewGenerator(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, g.Ping(context.Background()))
}
