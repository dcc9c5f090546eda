// Package env layers environment variables and an optional .env file over
// another driven.ConfigStore.
package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
)

// Environment variables and the config keys they override.
const (
	VarAPIBaseURL     = "DOCUFLOW_API_BASE_URL"
	VarAPITimeout     = "DOCUFLOW_API_TIMEOUT_SECONDS"
	VarAPIRateLimit   = "DOCUFLOW_API_RATE_LIMIT"
	VarStorageBackend = "DOCUFLOW_STORAGE_BACKEND"
	VarRedisURL       = "DOCUFLOW_REDIS_URL"
)

// Overrides maps config keys to the variable that overrides them.
var Overrides = map[string]string{
	"api.base_url":        VarAPIBaseURL,
	"api.timeout_seconds": VarAPITimeout,
	"api.rate_limit":      VarAPIRateLimit,
	"storage.backend":     VarStorageBackend,
	"storage.redis_url":   VarRedisURL,
}

// LoadDotEnv reads the given files (default ".env") into the process
// environment. Variables already set are kept. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore reads overridden keys from the environment and everything
// else from the wrapped store. Writes always go to the wrapped store.
type ConfigStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewConfigStore wraps base.
func NewConfigStore(base driven.ConfigStore) *ConfigStore {
	return &ConfigStore{base: base, lookup: os.LookupEnv}
}

func (s *ConfigStore) env(key string) (string, bool) {
	name, ok := Overrides[key]
	if !ok {
		return "", false
	}
	v, ok := s.lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Get retrieves a configuration value. Numeric overrides are returned
// as float64 so GetInt and GetFloat see them.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.env(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && key != "api.base_url" && key != "storage.redis_url" {
			return f, true
		}
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	return int(s.GetFloat(key))
}

// GetFloat retrieves a float configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	if v, ok := s.env(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return s.base.GetFloat(key)
}

// Set stores a value in the wrapped store.
// An environment override still wins on the next read.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Load reloads the wrapped store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}
