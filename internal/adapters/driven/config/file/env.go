package file

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// Ensure EnvConfigStore implements the interface.
var _ driven.ConfigStore = (*EnvConfigStore)(nil)

// Environment lists the variables that override config file keys.
// The key tag names the dot-notation setting each one replaces. Zero
// values count as unset.
//
//nolint:gosec // G101: These are variable names, not credentials.
type Environment struct {
	TypesenseURL        string `env:"TYPESENSE_URL" key:"index.url"`
	TypesenseAPIKey     string `env:"TYPESENSE_ADMIN_API_KEY" key:"index.api_key"`
	TypesenseCollection string `env:"TYPESENSE_COLLECTION_NAME" key:"index.collection"`
	MaxFacetValues      int    `env:"TYPESENSE_MAX_FACET_VALUES" key:"index.max_facet_values"`
	QueryBy             string `env:"TYPESENSE_QUERY_BY" key:"index.query_by"`
	LLMProvider         string `env:"LLM_PROVIDER" key:"llm.provider"`
	LLMModel            string `env:"LLM_MODEL" key:"llm.model"`
	LLMAPIKey           string `env:"LLM_API_KEY" key:"llm.api_key"`
	LLMBaseURL          string `env:"LLM_BASE_URL" key:"llm.base_url"`
	GoogleProject       string `env:"GOOGLE_CLOUD_PROJECT" key:"llm.project"`
	GoogleLocation      string `env:"GOOGLE_CLOUD_LOCATION" key:"llm.location"`
	RedisAddr           string `env:"REDIS_ADDR" key:"cache.redis_addr"`
	RedisPassword       string `env:"REDIS_PASSWORD" key:"cache.redis_password"`
	ServerAddr          string `env:"NLQUERY_SERVER_ADDR" key:"server.addr"`
	HistoryEnabled      string `env:"NLQUERY_HISTORY_ENABLED" key:"history.enabled"`
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set are left alone and missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// EnvConfigStore overlays environment variables on another ConfigStore.
// Reads prefer the environment; writes go to the underlying store.
type EnvConfigStore struct {
	base      driven.ConfigStore
	overrides map[string]string
}

// NewEnvConfigStore parses the environment and wraps base. A variable
// that does not parse as its type is an error.
func NewEnvConfigStore(base driven.ConfigStore) (*EnvConfigStore, error) {
	var vars Environment
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if vars.HistoryEnabled != "" {
		if _, err := strconv.ParseBool(strings.TrimSpace(vars.HistoryEnabled)); err != nil {
			return nil, fmt.Errorf("parse environment: NLQUERY_HISTORY_ENABLED: %w", err)
		}
	}
	return &EnvConfigStore{base: base, overrides: overridesFrom(vars)}, nil
}

// overridesFrom maps every non-empty field to its setting key.
func overridesFrom(vars Environment) map[string]string {
	out := make(map[string]string)
	v := reflect.ValueOf(vars)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("key")
		if key == "" || v.Field(i).IsZero() {
			continue
		}
		switch f := v.Field(i); f.Kind() {
		case reflect.Int:
			out[key] = strconv.Itoa(int(f.Int()))
		default:
			out[key] = f.String()
		}
	}
	return out
}

// Overridden reports whether key is set by the environment.
func (s *EnvConfigStore) Overridden(key string) bool {
	_, ok := s.overrides[key]
	return ok
}

// Get retrieves a value, preferring the environment.
func (s *EnvConfigStore) Get(key string) (any, bool) {
	if val, ok := s.overrides[key]; ok {
		return val, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string value.
func (s *EnvConfigStore) GetString(key string) string {
	if val, ok := s.overrides[key]; ok {
		return val
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer value. A string override that does not
// parse reads as 0.
func (s *EnvConfigStore) GetInt(key string) int {
	if val, ok := s.overrides[key]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	}
	return s.base.GetInt(key)
}

// GetBool retrieves a boolean value.
func (s *EnvConfigStore) GetBool(key string) bool {
	if val, ok := s.overrides[key]; ok {
		b, _ := strconv.ParseBool(strings.TrimSpace(val))
		return b
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a slice; overrides are comma-separated.
func (s *EnvConfigStore) GetStringSlice(key string) []string {
	val, ok := s.overrides[key]
	if !ok {
		return s.base.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set persists to the underlying store. An environment override for the
// same key still wins on the next read.
func (s *EnvConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the underlying store.
func (s *EnvConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the underlying store.
func (s *EnvConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the underlying configuration file path.
func (s *EnvConfigStore) Path() string {
	return s.base.Path()
}
