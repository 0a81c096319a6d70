// Package mcp provides an MCP (Model Context Protocol) server adapter for nlquery.
// It lets AI assistants turn shopper requests into structured catalogue queries.
package mcp

import "errors"

// ErrMissingTranslationService is returned when the translation service is not provided.
var ErrMissingTranslationService = errors.New("mcp: translation service is required")
