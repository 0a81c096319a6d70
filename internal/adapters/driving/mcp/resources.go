package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for nlquery resources.
	uriScheme = "nlquery://"

	historyListLimit = 20
)

// registerResources registers the resources whose ports are configured.
func (s *Server) registerResources() {
	if s.ports.Introspection != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "schema",
			Name:        "schema",
			Description: "Collection properties as shown to the model when translating",
			MIMEType:    "text/markdown",
		}, s.handleSchemaResource)
	}

	if s.ports.History != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "history",
			Name:        "history",
			Description: "Most recent translations",
			MIMEType:    "application/json",
		}, s.handleHistoryResource)

		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "history/{entryId}",
			Name:        "history-entry",
			Description: "A single recorded translation",
			MIMEType:    "application/json",
		}, s.handleHistoryEntryResource)
	}
}

// historyInfo is the JSON shape of a history entry.
type historyInfo struct {
	ID         string                  `json:"id"`
	Text       string                  `json:"text"`
	Result     *domain.StructuredQuery `json:"result,omitempty"`
	ErrorKind  domain.ErrorKind        `json:"error_kind,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Model      string                  `json:"model,omitempty"`
	DurationMS int64                   `json:"duration_ms"`
	CreatedAt  time.Time               `json:"created_at"`
}

func toHistoryInfo(e domain.HistoryEntry) historyInfo {
	return historyInfo{
		ID:         e.ID,
		Text:       e.Text,
		Result:     e.Result,
		ErrorKind:  e.ErrorKind,
		Error:      e.Error,
		Model:      e.Model,
		DurationMS: e.Duration.Milliseconds(),
		CreatedAt:  e.CreatedAt,
	}
}

// handleSchemaResource returns the cached schema table.
func (s *Server) handleSchemaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	table, err := s.ports.Introspection.SchemaTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     table,
		}},
	}, nil
}

// handleHistoryResource returns the most recent translations.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.History.Recent(ctx, historyListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]historyInfo, len(entries))
	for i := range entries {
		infos[i] = toHistoryInfo(entries[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleHistoryEntryResource returns one translation by ID.
func (s *Server) handleHistoryEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractHistoryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history entry: %w", err)
	}
	return jsonResource(req.Params.URI, toHistoryInfo(*entry))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryID extracts the entry ID from a URI like nlquery://history/{entryId}.
func extractHistoryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
