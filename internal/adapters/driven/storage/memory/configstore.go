package memory

import (
	"math"
	"sync"

	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings for the life of the process. It backs the
// settings service when the config file cannot be opened.
//
// Values are held the way the TOML store reads them back: dot-notation
// keys, int64 integers, and nested tables flattened, so "index" set to
// {"url": ...} is read as "index.url".
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get retrieves a value by dot-notation key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns "" for missing or non-string values.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns 0 for missing or non-integer values.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	n, _ := val.(int64)
	return int(n)
}

// GetBool returns false for missing or non-boolean values.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice skips non-string elements.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Set stores value under key. A table value replaces every key below it.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if table, ok := value.(map[string]any); ok {
		prefix := key + "."
		for k := range s.values {
			if len(k) > len(prefix) && k[:len(prefix)] == prefix {
				delete(s.values, k)
			}
		}
		for k, v := range table {
			s.setLocked(prefix+k, v)
		}
		return nil
	}
	s.setLocked(key, value)
	return nil
}

func (s *ConfigStore) setLocked(key string, value any) {
	if table, ok := value.(map[string]any); ok {
		for k, v := range table {
			s.setLocked(key+"."+k, v)
		}
		return
	}
	s.values[key] = normalize(value)
}

// normalize converts integers to int64. Whole floats count as integers,
// which is how JSON-decoded numbers arrive.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
			return int64(v)
		}
		return v
	default:
		return value
	}
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path reports that nothing is persisted.
func (s *ConfigStore) Path() string { return ":memory:" }
