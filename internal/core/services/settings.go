package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyIndexURL        = "index.url"
	keyIndexAPIKey     = "index.api_key"
	keyIndexCollection = "index.collection"
	keyIndexMaxFacets  = "index.max_facet_values"
	keyIndexQueryBy    = "index.query_by"
	keyIndexTimeout    = "index.timeout"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMProject      = "llm.project"
	keyLLMLocation     = "llm.location"
	keyLLMTimeout      = "llm.timeout"
	keyCacheRedisAddr  = "cache.redis_addr"
	keyCacheRedisPass  = "cache.redis_password"
	keyCacheRedisDB    = "cache.redis_db"
	keyCachePrefix     = "cache.prefix"
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerBurst     = "server.burst"
	keyHistoryEnabled  = "history.enabled"
	keyHistoryDataDir  = "history.data_dir"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindProvider
)

// settingKinds maps every recognised key to the type it is stored as.
var settingKinds = map[string]valueKind{
	keyIndexURL:        kindString,
	keyIndexAPIKey:     kindString,
	keyIndexCollection: kindString,
	keyIndexMaxFacets:  kindInt,
	keyIndexQueryBy:    kindString,
	keyIndexTimeout:    kindDuration,
	keyLLMProvider:     kindProvider,
	keyLLMModel:        kindString,
	keyLLMBaseURL:      kindString,
	keyLLMAPIKey:       kindString,
	keyLLMProject:      kindString,
	keyLLMLocation:     kindString,
	keyLLMTimeout:      kindDuration,
	keyCacheRedisAddr:  kindString,
	keyCacheRedisPass:  kindString,
	keyCacheRedisDB:    kindInt,
	keyCachePrefix:     kindString,
	keyServerAddr:      kindString,
	keyServerRateLimit: kindFloat,
	keyServerBurst:     kindInt,
	keyHistoryEnabled:  kindBool,
	keyHistoryDataDir:  kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Index: domain.IndexSettings{
			URL:            s.configStore.GetString(keyIndexURL),
			APIKey:         s.configStore.GetString(keyIndexAPIKey),
			Collection:     s.configStore.GetString(keyIndexCollection),
			MaxFacetValues: s.getInt(keyIndexMaxFacets, defaults.Index.MaxFacetValues),
			QueryBy:        s.getString(keyIndexQueryBy, defaults.Index.QueryBy),
			Timeout:        s.getDuration(keyIndexTimeout, defaults.Index.Timeout),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
			Project:  s.configStore.GetString(keyLLMProject),
			Location: s.configStore.GetString(keyLLMLocation),
			Timeout:  s.getDuration(keyLLMTimeout, defaults.LLM.Timeout),
		},
		Cache: domain.CacheSettings{
			RedisAddr:     s.configStore.GetString(keyCacheRedisAddr),
			RedisPassword: s.configStore.GetString(keyCacheRedisPass),
			RedisDB:       s.configStore.GetInt(keyCacheRedisDB),
			Prefix:        s.getString(keyCachePrefix, defaults.Cache.Prefix),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit: s.getFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:     s.getInt(keyServerBurst, defaults.Server.Burst),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			DataDir: s.configStore.GetString(keyHistoryDataDir),
		},
	}

	// The model default follows the provider.
	model := s.configStore.GetString(keyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}
	settings.LLM.Model = model

	return settings, nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		typed = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		typed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s must be a duration such as 30s", domain.ErrInvalidInput, key)
		}
		typed = value
	case kindProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: %s: %s", domain.ErrUnsupportedType, key, value)
		}
		typed = value
	default:
		typed = value
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every required setting is present.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getFloat accepts both TOML floats and integers.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
