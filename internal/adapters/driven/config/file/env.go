package file

import (
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure EnvStore implements the interface.
var _ driven.ConfigStore = (*EnvStore)(nil)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TSS_"

// EnvStore reads TSS_* environment variables before falling back to the
// wrapped store. "meilisearch.api_key" is read from TSS_MEILISEARCH_API_KEY.
// Writes always go to the wrapped store.
type EnvStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewEnvStore wraps base with the process environment.
func NewEnvStore(base driven.ConfigStore) *EnvStore {
	return &EnvStore{base: base, lookup: os.LookupEnv}
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (s *EnvStore) env(key string) (string, bool) {
	v, ok := s.lookup(EnvName(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Get returns the environment value as a string when set.
func (s *EnvStore) Get(key string) (any, bool) {
	if v, ok := s.env(key); ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string value.
func (s *EnvStore) GetString(key string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer value. A malformed override yields 0.
func (s *EnvStore) GetInt(key string) int {
	if v, ok := s.env(key); ok {
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a number. A malformed override yields 0.
func (s *EnvStore) GetFloat(key string) float64 {
	if v, ok := s.env(key); ok {
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return s.base.GetFloat(key)
}

// GetStringSlice splits a comma separated override.
func (s *EnvStore) GetStringSlice(key string) []string {
	v, ok := s.env(key)
	if !ok {
		return s.base.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set writes to the wrapped store.
func (s *EnvStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Load reloads the wrapped store.
func (s *EnvStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *EnvStore) Path() string {
	return s.base.Path()
}
