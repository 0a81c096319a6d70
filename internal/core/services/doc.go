// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The translation pipeline lives here: schema description (schema.go),
// facet resolution (facets.go), the introspection cache (introspection.go),
// prompt composition (prompt.go), constrained generation and output
// validation (translate.go, validate.go) and error classification (classify.go).
//
// Services are pure Go with no CGO. They never import adapters.
package services
