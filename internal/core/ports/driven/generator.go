package driven

import (
	"context"
	"encoding/json"
)

// StructuredGenerator turns a system instruction and a user prompt into a
// single JSON value constrained by an output schema. It is the only
// contact point with a model provider, so providers are swappable.
//
// Implementations may include:
//   - Gemini (Gemini API or Vertex AI) with a response schema
//   - OpenAI with json_schema response format
//   - Anthropic with a forced tool call
//   - Ollama with a format schema
type StructuredGenerator interface {
	// GenerateStructured returns the raw JSON value produced by the model.
	// A nil value with a nil error means the call succeeded but the model
	// returned no structured value.
	GenerateStructured(ctx context.Context, req StructuredRequest) (json.RawMessage, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// StructuredRequest is one constrained generation call.
type StructuredRequest struct {
	// SystemInstruction is the composed instruction.
	SystemInstruction string

	// Prompt is the user's raw text.
	Prompt string

	// SchemaName names the output shape for providers that need one.
	SchemaName string

	// Schema is a JSON Schema object describing the output.
	Schema map[string]any

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
