package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// queryValidator enforces the structured query output contract.
var queryValidator = mustOutputValidator()

// outputValidator rejects, rather than coerces, any model answer that is
// not exactly a StructuredQuery.
type outputValidator struct {
	schema *jsonschema.Schema
}

func mustOutputValidator() *outputValidator {
	data, err := json.Marshal(domain.StructuredQuerySchema())
	if err != nil {
		panic(fmt.Sprintf("marshal structured query schema: %v", err))
	}
	schema, err := jsonschema.NewCompiler().Compile(data)
	if err != nil {
		panic(fmt.Sprintf("compile structured query schema: %v", err))
	}
	return &outputValidator{schema: schema}
}

// rawStructuredQuery distinguishes absent and null keys from empty ones.
type rawStructuredQuery struct {
	Query    *string `json:"query"`
	FilterBy *string `json:"filter_by"`
	SortBy   *string `json:"sort_by"`
}

// decode validates raw and converts it. Every failure is a schema
// violation QueryError.
func (v *outputValidator) decode(raw json.RawMessage) (*domain.StructuredQuery, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, domain.NewSchemaViolationError("")
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, domain.NewSchemaViolationError("invalid JSON: " + err.Error())
	}

	if result := v.schema.Validate(value); !result.IsValid() {
		msgs := make([]string, 0, len(result.Errors))
		for field, e := range result.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Error()))
		}
		sort.Strings(msgs)
		return nil, domain.NewSchemaViolationError(strings.Join(msgs, "; "))
	}

	var parsed rawStructuredQuery
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, domain.NewSchemaViolationError(err.Error())
	}

	q := &domain.StructuredQuery{
		Query:    deref(parsed.Query),
		FilterBy: deref(parsed.FilterBy),
		SortBy:   deref(parsed.SortBy),
	}
	if n := len(q.SortClauses()); n > domain.MaxSortClauses {
		return nil, domain.NewSchemaViolationError(
			fmt.Sprintf("sort_by has %d clauses, at most %d allowed", n, domain.MaxSortClauses))
	}
	return q, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
