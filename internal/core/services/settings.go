package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout_seconds"
	KeyAPIRateLimit   = "api.rate_limit"
	KeyStorageBackend = "storage.backend"
	KeyRedisURL       = "storage.redis_url"
)

var settingKeys = []string{KeyAPIBaseURL, KeyAPITimeout, KeyAPIRateLimit, KeyStorageBackend, KeyRedisURL}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if v := s.configStore.GetString(KeyAPIBaseURL); v != "" {
		settings.API.BaseURL = v
	}
	if v := s.configStore.GetInt(KeyAPITimeout); v > 0 {
		settings.API.TimeoutSeconds = v
	}
	if _, ok := s.configStore.Get(KeyAPIRateLimit); ok {
		if v := s.configStore.GetFloat(KeyAPIRateLimit); v >= 0 {
			settings.API.RateLimit = v
		}
	}
	if b := domain.StorageBackend(s.configStore.GetString(KeyStorageBackend)); b.IsValid() {
		settings.Storage.Backend = b
	}
	settings.Storage.RedisURL = s.configStore.GetString(KeyRedisURL)

	return &settings, nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyAPIBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, key)
		}
		stored = strings.TrimRight(value, "/")
	case KeyAPITimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case KeyStorageBackend:
		b := domain.StorageBackend(value)
		if !b.IsValid() {
			return fmt.Errorf("%w: %s must be one of sqlite, redis, memory", domain.ErrInvalidInput, key)
		}
		stored = b.String()
	case KeyRedisURL:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every settable key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
