package domain

import "time"

const unknownDescription = "Unknown"

// Defaults for optional settings.
const (
	DefaultMaxFacetValues = 20
	DefaultQueryBy        = "name,brand_name,sub_category_name"
	DefaultServerAddr     = ":8080"
	DefaultLLMTimeout     = 60 * time.Second
	DefaultIndexTimeout   = 5 * time.Second
	DefaultCachePrefix    = "nlquery:"
	DefaultHistoryLimit   = 20
)

// AIProvider identifies a generative model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is Google Gemini, via the Gemini API or Vertex AI.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
// Gemini is special-cased: Vertex AI authenticates with a project instead.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// IndexSettings holds search index connection settings.
type IndexSettings struct {
	// URL is the index base URL, e.g. http://localhost:8108.
	URL string

	// APIKey is the admin key used for schema retrieval and facet queries.
	APIKey string

	// Collection is the product collection name. Required, no default.
	Collection string

	// MaxFacetValues caps the enumerated values shown per facet field.
	MaxFacetValues int

	// QueryBy lists the fields full-text queries run against.
	QueryBy string

	// Timeout bounds each index request.
	Timeout time.Duration
}

// LLMSettings holds generative model provider configuration.
type LLMSettings struct {
	// Provider is the model provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and compatible APIs).
	BaseURL string

	// APIKey is the provider API key.
	APIKey string

	// Project selects the Vertex AI backend for Gemini when set.
	Project string

	// Location is the Vertex AI region.
	Location string

	// Timeout bounds a single generation call.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	if l.Provider == AIProviderGemini && l.APIKey == "" && l.Project == "" {
		return false
	}
	return true
}

// CacheSettings configures the shared introspection snapshot.
type CacheSettings struct {
	// RedisAddr enables the redis snapshot store when set.
	RedisAddr string

	// RedisPassword is optional.
	RedisPassword string

	// RedisDB selects the redis database.
	RedisDB int

	// Prefix namespaces snapshot keys.
	Prefix string
}

// Enabled reports whether a shared snapshot store is configured.
func (c CacheSettings) Enabled() bool {
	return c.RedisAddr != ""
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained requests per second for model-backed
	// endpoints. Zero disables limiting.
	RateLimit float64

	// Burst is the limiter bucket size.
	Burst int
}

// HistorySettings configures translation history.
type HistorySettings struct {
	// Enabled turns recording on.
	Enabled bool

	// DataDir holds the history database. Empty means ~/.nlquery/data.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Index   IndexSettings
	LLM     LLMSettings
	Cache   CacheSettings
	Server  ServerSettings
	History HistorySettings
}

// DefaultAppSettings returns settings with documented fallbacks applied.
// Endpoints, credentials and the collection name have no defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Index: IndexSettings{
			MaxFacetValues: DefaultMaxFacetValues,
			QueryBy:        DefaultQueryBy,
			Timeout:        DefaultIndexTimeout,
		},
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
			Timeout:  DefaultLLMTimeout,
		},
		Cache: CacheSettings{
			Prefix: DefaultCachePrefix,
		},
		Server: ServerSettings{
			Addr:  DefaultServerAddr,
			Burst: 1,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// Validate fails fast with a ConfigurationError naming every missing
// required value.
func (s AppSettings) Validate() error {
	var missing []string
	if s.Index.URL == "" {
		missing = append(missing, "index.url")
	}
	if s.Index.APIKey == "" {
		missing = append(missing, "index.api_key")
	}
	if s.Index.Collection == "" {
		missing = append(missing, "index.collection")
	}
	switch {
	case !s.LLM.Provider.IsValid():
		missing = append(missing, "llm.provider")
	case s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "":
		missing = append(missing, "llm.api_key")
	case s.LLM.Provider == AIProviderGemini && s.LLM.APIKey == "" && s.LLM.Project == "":
		missing = append(missing, "llm.api_key or llm.project")
	}
	if len(missing) > 0 {
		return NewConfigurationError(missing...)
	}
	return nil
}

// AllLLMProviders returns providers that support structured generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-2.5-flash",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}
