// Package ai provides factory functions for creating model provider adapters.
package ai

import (
	"context"
	"fmt"

	anthropicllm "github.com/custodia-labs/nlquery/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/nlquery/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/nlquery/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/nlquery/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// CreateGenerator creates the structured generator for the configured
// provider. Incomplete settings yield a ConfigurationError naming the gap.
func CreateGenerator(ctx context.Context, settings *domain.LLMSettings) (driven.StructuredGenerator, error) {
	if settings == nil {
		return nil, domain.NewConfigurationError("llm.provider")
	}
	if !settings.IsConfigured() {
		return nil, missingLLMSettings(settings)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return createGemini(ctx, settings)

	case domain.AIProviderOllama:
		return createOllama(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAI(settings)

	case domain.AIProviderAnthropic:
		return createAnthropic(settings)

	default:
		return nil, fmt.Errorf("%w: llm provider %s", domain.ErrUnsupportedType, settings.Provider)
	}
}

func missingLLMSettings(settings *domain.LLMSettings) error {
	switch {
	case !settings.Provider.IsValid():
		return domain.NewConfigurationError("llm.provider")
	case settings.Provider == domain.AIProviderGemini:
		return domain.NewConfigurationError("llm.api_key or llm.project")
	default:
		return domain.NewConfigurationError("llm.api_key")
	}
}

// createGemini creates a Gemini generator on the Gemini API or Vertex AI.
func createGemini(ctx context.Context, settings *domain.LLMSettings) (driven.StructuredGenerator, error) {
	return geminillm.NewGenerator(ctx, geminillm.Config{
		APIKey:   settings.APIKey,
		Project:  settings.Project,
		Location: settings.Location,
		Model:    settings.Model,
		BaseURL:  settings.BaseURL,
		Timeout:  settings.Timeout,
	})
}

// createOllama creates an Ollama generator.
func createOllama(settings *domain.LLMSettings) driven.StructuredGenerator {
	return ollamallm.NewGenerator(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// createOpenAI creates an OpenAI generator.
func createOpenAI(settings *domain.LLMSettings) (driven.StructuredGenerator, error) {
	return openaillm.NewGenerator(openaillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// createAnthropic creates an Anthropic generator.
func createAnthropic(settings *domain.LLMSettings) (driven.StructuredGenerator, error) {
	return anthropicllm.NewGenerator(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}
