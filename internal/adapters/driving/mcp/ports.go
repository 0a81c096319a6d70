package mcp

import (
	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
)

// Ports aggregates the driving ports exposed over MCP.
type Ports struct {
	// Translation converts free text into a structured query. Required.
	Translation driving.TranslationService

	// Search executes translated queries. Optional; the search tool is
	// only registered when set.
	Search driving.SearchService

	// Introspection backs the schema resource. Optional.
	Introspection driving.IntrospectionService

	// History backs the history resources. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Translation == nil {
		return ErrMissingTranslationService
	}
	return nil
}
