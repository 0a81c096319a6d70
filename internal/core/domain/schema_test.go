package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func counts(values ...string) []FacetCount {
	out := make([]FacetCount, len(values))
	for i, v := range values {
		out[i] = FacetCount{Value: v, Count: len(values) - i}
	}
	return out
}

func TestNewFacetSummary(t *testing.T) {
	tests := []struct {
		name     string
		counts   []FacetCount
		max      int
		values   []string
		overflow bool
	}{
		{"under the cap", counts("S", "M"), 3, []string{"S", "M"}, false},
		{"exactly the cap", counts("S", "M", "L"), 3, []string{"S", "M", "L"}, false},
		{"extra value exceeds the cap", counts("S", "M", "L", "XL"), 3, []string{"S", "M", "L"}, true},
		{"no values", nil, 3, []string{}, false},
		{"zero cap", counts("S"), 0, []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFacetSummary("size", tt.counts, tt.max)
			assert.Equal(t, "size", s.Field)
			assert.Equal(t, tt.values, s.Values)
			assert.Equal(t, tt.overflow, s.Overflow)
			assert.LessOrEqual(t, len(s.Values), tt.max)
		})
	}
}

func TestFieldDescriptor_Describable(t *testing.T) {
	assert.True(t, FieldDescriptor{Name: "price", IsFilterable: true}.Describable())
	assert.False(t, FieldDescriptor{Name: "image_url", IsFilterable: false}.Describable())
	assert.False(t, FieldDescriptor{Name: WildcardFieldName, IsFilterable: true}.Describable())
	assert.False(t, FieldDescriptor{IsFilterable: true}.Describable())
}
