// Package domain defines the core business entities for nlquery.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FieldDescriptor: One column of a search collection schema
//   - FacetSummary: The enumerated values observed for a facetable field
//   - StructuredQuery: The query/filter/sort triple produced from free text
//   - QueryError: The introspection/generation/configuration error taxonomy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
