package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

func TestOutputValidator_Decode_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.StructuredQuery
	}{
		{
			name: "all fields",
			raw:  `{"query":"jacket","filter_by":"brand_name:[TERRAIN,PUMA]","sort_by":"price:asc"}`,
			want: domain.StructuredQuery{Query: "jacket", FilterBy: "brand_name:[TERRAIN,PUMA]", SortBy: "price:asc"},
		},
		{
			name: "filter only",
			raw:  `{"filter_by":"price:<50"}`,
			want: domain.StructuredQuery{FilterBy: "price:<50"},
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: domain.StructuredQuery{},
		},
		{
			name: "nulls are absent",
			raw:  `{"query":null,"filter_by":"size:S","sort_by":null}`,
			want: domain.StructuredQuery{FilterBy: "size:S"},
		},
		{
			name: "three sort clauses",
			raw:  `{"sort_by":"price:asc,brand_name:desc,stock:desc"}`,
			want: domain.StructuredQuery{SortBy: "price:asc,brand_name:desc,stock:desc"},
		},
		{
			name: "surrounding whitespace",
			raw:  "\n {\"query\":\"shirt\"} \n",
			want: domain.StructuredQuery{Query: "shirt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queryValidator.decode(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *q)
		})
	}
}

func TestOutputValidator_Decode_Violations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no value", ``},
		{"null", `null`},
		{"not JSON", `price:<50`},
		{"array", `[]`},
		{"string", `"price:<50"`},
		{"extra key", `{"query":"jacket","limit":10}`},
		{"wrong type", `{"filter_by":42}`},
		{"too many sort clauses", `{"sort_by":"price:asc,name:asc,stock:desc,brand_name:asc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queryValidator.decode(json.RawMessage(tt.raw))

			require.Error(t, err)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, domain.ErrGeneration)
			assert.ErrorIs(t, err, domain.ErrSchemaViolation)
			assert.Contains(t, err.Error(), "response doesn't satisfy schema")
		})
	}
}

func TestOutputValidator_Decode_ViolationNamesProperty(t *testing.T) {
	_, err := queryValidator.decode(json.RawMessage(`{"query":"jacket","limit":10}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
	assert.NotContains(t, err.Error(), "{property}")
	assert.NotContains(t, err.Error(), "{properties}")
}
