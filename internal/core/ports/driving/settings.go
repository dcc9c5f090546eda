package driving

import "github.com/custodia-labs/docuflow-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Set updates one setting by its dotted config key.
	Set(key, value string) error

	// Keys lists every settable key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the configuration file location.
	ConfigPath() string
}

// ThemeService persists the UI theme.
type ThemeService interface {
	Theme() domain.Theme
	SetTheme(theme domain.Theme) error
	Toggle() domain.Theme
}
