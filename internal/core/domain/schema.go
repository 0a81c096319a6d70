package domain

// WildcardFieldName is the catch-all field some collections declare for
// auto-detected attributes. It is never described to the model.
const WildcardFieldName = ".*"

// FieldDescriptor is one column of a search collection schema.
type FieldDescriptor struct {
	// Name is unique within a collection.
	Name string

	// DataType is the index type tag (string, int32, float, bool, string[], ...).
	DataType string

	// IsFilterable is false for fields stored but not indexed.
	IsFilterable bool

	// IsSortable reports whether the field can appear in a sort expression.
	IsSortable bool

	// HasFacet marks a field with a bounded set of values worth enumerating.
	HasFacet bool

	// Description comes from the collection metadata, keyed by field name.
	// Empty when the metadata has no entry for the field.
	Description string
}

// CollectionSchema is the raw schema of one named collection as returned
// by the search index.
type CollectionSchema struct {
	// Name is the collection name.
	Name string

	// Fields is in declaration order.
	Fields []FieldDescriptor

	// Metadata maps field names to free-text descriptions.
	Metadata map[string]string
}

// Describable reports whether a field belongs in the schema description.
// Only indexed, concretely named fields are shown.
func (f FieldDescriptor) Describable() bool {
	return f.IsFilterable && f.Name != "" && f.Name != WildcardFieldName
}

// FacetCount is a single distinct value observed for a facet field.
type FacetCount struct {
	Value string
	Count int
}

// FacetSummary is derived for each facetable field.
type FacetSummary struct {
	// Field is the facet field name.
	Field string

	// Values holds distinct observed values, truncated to the configured cap.
	Values []string

	// Overflow is true when more distinct values exist than the cap allows.
	Overflow bool
}

// NewFacetSummary truncates counts to maxValues and flags overflow.
// Counts are expected to have been requested with maxValues+1 so that
// a longer list proves the field has more values than the cap.
func NewFacetSummary(field string, counts []FacetCount, maxValues int) FacetSummary {
	summary := FacetSummary{Field: field}
	limit := len(counts)
	if maxValues >= 0 && limit > maxValues {
		limit = maxValues
		summary.Overflow = true
	}
	summary.Values = make([]string, 0, limit)
	for _, c := range counts[:limit] {
		summary.Values = append(summary.Values, c.Value)
	}
	return summary
}
