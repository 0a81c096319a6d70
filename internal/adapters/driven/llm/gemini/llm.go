// Package gemini provides a structured generation adapter using the Google
// GenAI SDK, against either the Gemini API or Vertex AI.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.StructuredGenerator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultLocation = "us-central1"
	DefaultTimeout  = 120 * time.Second
)

// Config holds configuration for the Gemini generator.
// Setting Project selects Vertex AI; otherwise APIKey is required.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string

	// Project is the Google Cloud project for Vertex AI.
	Project string

	// Location is the Vertex AI region (default: us-central1).
	Location string

	// Model is the model to use (default: gemini-2.5-flash).
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Generator produces schema-constrained JSON with a response schema.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Gemini generator.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" && cfg.Project == "" {
		return nil, fmt.Errorf("gemini: API key or project is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
			Timeout: &cfg.Timeout,
		},
	}
	if cfg.Project != "" {
		if cfg.Location == "" {
			cfg.Location = DefaultLocation
		}
		cc.APIKey = ""
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model}, nil
}

// GenerateStructured requests JSON constrained by the response schema and
// returns the concatenated text parts of the first candidate.
func (g *Generator) GenerateStructured(ctx context.Context, req driven.StructuredRequest) (json.RawMessage, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schemaFromMap(req.Schema),
		Temperature:      genai.Ptr(float32(req.Temperature)),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, nil
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, nil
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, nil
	}
	return json.RawMessage(text), nil
}

// schemaFromMap converts a JSON Schema object into the SDK's schema type.
// A ["T","null"] type union becomes a nullable T.
func schemaFromMap(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}
	s := &genai.Schema{}
	switch t := m["type"].(type) {
	case string:
		s.Type = schemaType(t)
	case []any:
		for _, v := range t {
			name, _ := v.(string)
			if name == "null" {
				s.Nullable = genai.Ptr(true)
				continue
			}
			s.Type = schemaType(name)
		}
	case []string:
		for _, name := range t {
			if name == "null" {
				s.Nullable = genai.Ptr(true)
				continue
			}
			s.Type = schemaType(name)
		}
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		names := make([]string, 0, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = schemaFromMap(pm)
				names = append(names, name)
			}
		}
		sort.Strings(names)
		s.PropertyOrdering = names
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = schemaFromMap(items)
	}
	switch r := m["required"].(type) {
	case []string:
		s.Required = r
	case []any:
		for _, v := range r {
			if name, ok := v.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	return s
}

func schemaType(name string) genai.Type {
	switch name {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// ModelName returns the name of the model being used.
func (g *Generator) ModelName() string {
	return g.model
}

// Ping validates the model exists and the credentials are accepted.
func (g *Generator) Ping(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (g *Generator) Close() error {
	return nil
}
