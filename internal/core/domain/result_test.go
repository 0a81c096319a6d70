package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult_Data(t *testing.T) {
	q := &StructuredQuery{FilterBy: "brand_name:Nike"}

	res := NewResult(q, nil)

	assert.Same(t, q, res.Data)
	assert.Nil(t, res.Error)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"filter_by":"brand_name:Nike"},"error":null}`, string(raw))
}

func TestNewResult_QueryErrorHidesCause(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewIntrospectionError(errors.New("dial tcp: refused")))

	res := NewResult[StructuredQuery](nil, err)

	require.NotNil(t, res.Error)
	assert.Nil(t, res.Data)
	assert.Equal(t, "failed to get collection properties", res.Error.Message)
	assert.Equal(t, KindIntrospection, res.Error.Kind)

	raw, mErr := json.Marshal(res)
	require.NoError(t, mErr)
	assert.JSONEq(t,
		`{"data":null,"error":{"message":"failed to get collection properties","kind":"introspection"}}`,
		string(raw))
}

func TestNewResult_GenerationFailuresAreDistinguishable(t *testing.T) {
	violation := NewResult[StructuredQuery](nil, NewSchemaViolationError(`unexpected key "explanation"`))
	failure := NewResult[StructuredQuery](nil, NewGenerationError(errors.New("quota exceeded")))

	require.NotNil(t, violation.Error)
	require.NotNil(t, failure.Error)
	assert.Equal(t, "response doesn't satisfy schema", violation.Error.Message)
	assert.Equal(t, "error generating search query", failure.Error.Message)
	assert.NotEqual(t, violation.Error.Message, failure.Error.Message)
	assert.Equal(t, KindGeneration, violation.Error.Kind)
	assert.Equal(t, KindGeneration, failure.Error.Kind)
	assert.NotContains(t, failure.Error.Message, "quota")
}

func TestNewResult_PlainError(t *testing.T) {
	res := NewResult[SearchResult](nil, errors.New("search products: boom"))

	require.NotNil(t, res.Error)
	assert.Equal(t, "search products: boom", res.Error.Message)
	assert.Empty(t, res.Error.Kind)
}

func TestNewResult_NothingIsError(t *testing.T) {
	res := NewResult[StructuredQuery](nil, nil)

	assert.Nil(t, res.Data)
	require.NotNil(t, res.Error)
	assert.Equal(t, "no result", res.Error.Message)
}
