package domain

import "strings"

// MaxSortClauses is the largest number of comma-separated sort clauses
// a structured query may carry.
const MaxSortClauses = 3

// StructuredQuery is the output of the translation pipeline.
//
// A field is set only when generation produced a non-null value for it;
// unset fields are omitted from the JSON encoding entirely.
type StructuredQuery struct {
	// Query is a full-text search term.
	Query string `json:"query,omitempty"`

	// FilterBy is a filter expression in the index's filter grammar.
	FilterBy string `json:"filter_by,omitempty"`

	// SortBy holds up to MaxSortClauses comma-separated field:asc|desc clauses.
	SortBy string `json:"sort_by,omitempty"`
}

// IsEmpty reports whether no field was produced.
func (q StructuredQuery) IsEmpty() bool {
	return q.Query == "" && q.FilterBy == "" && q.SortBy == ""
}

// SortClauses splits SortBy into trimmed, non-empty clauses.
func (q StructuredQuery) SortClauses() []string {
	if strings.TrimSpace(q.SortBy) == "" {
		return nil
	}
	parts := strings.Split(q.SortBy, ",")
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}

// SearchText returns the full-text term to execute, defaulting to the
// wildcard query when generation produced none.
func (q StructuredQuery) SearchText() string {
	if q.Query == "" {
		return "*"
	}
	return q.Query
}

// StructuredQuerySchema returns the JSON Schema of the generation contract:
// an object with three optional string keys and nothing else. Null values
// are tolerated and treated as absent.
func StructuredQuerySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        []any{"string", "null"},
				"description": "a full-text search query",
			},
			"filter_by": map[string]any{
				"type":        []any{"string", "null"},
				"description": "a filter query in Typesense format",
			},
			"sort_by": map[string]any{
				"type":        []any{"string", "null"},
				"description": "a sorting query in Typesense format",
			},
		},
		"additionalProperties": false,
	}
}
