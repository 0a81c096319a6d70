package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// TranslateInput is the input schema for the translate tool.
type TranslateInput struct {
	Text string `json:"text" jsonschema:"what the shopper is looking for, in their own words"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Text    string `json:"text" jsonschema:"what the shopper is looking for, in their own words"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based result page (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"results per page (default 10)"`
}

// TranslateOutput is the discriminated translate result.
type TranslateOutput = domain.Result[domain.StructuredQuery]

// SearchOutput is the discriminated search result.
type SearchOutput = domain.Result[domain.SearchResult]

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "translate_query",
		Description: "Convert a natural-language clothing search into a Typesense query " +
			"with optional query, filter_by and sort_by fields",
	}, s.handleTranslate)

	if s.ports.Search != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_products",
			Description: "Translate a natural-language clothing search and return matching products",
		}, s.handleSearch)
	}
}

// handleTranslate handles the translate tool invocation. Pipeline errors
// are reported in the result, not as protocol errors.
func (s *Server) handleTranslate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranslateInput,
) (*mcp.CallToolResult, TranslateOutput, error) {
	q, err := s.ports.Translation.Translate(ctx, input.Text)
	return nil, domain.NewResult(q, err), nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Page: input.Page, PerPage: input.PerPage}
	result, err := s.ports.Search.Search(ctx, input.Text, opts)
	return nil, domain.NewResult(result, err), nil
}
