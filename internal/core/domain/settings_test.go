package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() AppSettings {
	s := DefaultAppSettings()
	s.Index.URL = "http://localhost:8108"
	s.Index.APIKey = "xyz"
	s.Index.Collection = "products"
	s.LLM.APIKey = "key"
	return s
}

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("mistral").IsValid())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Google Gemini (cloud)", AIProviderGemini.Description())
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, 20, s.Index.MaxFacetValues)
	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", s.LLM.Model)
	assert.Empty(t, s.Index.Collection)
	assert.Empty(t, s.Index.URL)
	assert.Empty(t, s.Index.APIKey)
}

func TestDefaultLLMModels_CoversAllProviders(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p)
	}
}

func TestAppSettings_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validSettings().Validate())
	})

	t.Run("defaults alone are not enough", func(t *testing.T) {
		err := DefaultAppSettings().Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.Contains(t, err.Error(), "index.url")
		assert.Contains(t, err.Error(), "index.api_key")
		assert.Contains(t, err.Error(), "index.collection")
		assert.Contains(t, err.Error(), "llm.api_key or llm.project")
	})

	t.Run("vertex project replaces gemini api key", func(t *testing.T) {
		s := validSettings()
		s.LLM.APIKey = ""
		s.LLM.Project = "my-project"
		assert.NoError(t, s.Validate())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		s := validSettings()
		s.LLM.Provider = AIProviderOllama
		s.LLM.APIKey = ""
		assert.NoError(t, s.Validate())
	})

	t.Run("openai needs a key", func(t *testing.T) {
		s := validSettings()
		s.LLM.Provider = AIProviderOpenAI
		s.LLM.APIKey = ""
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.api_key")
	})

	t.Run("unknown provider", func(t *testing.T) {
		s := validSettings()
		s.LLM.Provider = "mistral"
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.provider")
	})
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderGemini}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderGemini, Project: "p"}.IsConfigured())
}

func TestCacheSettings_Enabled(t *testing.T) {
	assert.False(t, CacheSettings{}.Enabled())
	assert.True(t, CacheSettings{RedisAddr: "localhost:6379"}.Enabled())
}
