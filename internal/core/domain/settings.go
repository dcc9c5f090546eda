package domain

const unknownDescription = "Unknown"

// Theme is the colour scheme of the terminal UI.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// StorageBackend selects where cached view state is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps state in a local SQLite file.
	StorageSQLite StorageBackend = "sqlite"

	// StorageRedis keeps state in a Redis server shared between machines.
	StorageRedis StorageBackend = "redis"

	// StorageMemory keeps state for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageRedis, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (local file)"
	case StorageRedis:
		return "Redis (shared server)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// APISettings holds backend connection configuration.
type APISettings struct {
	// BaseURL is the DocuFlow backend root.
	BaseURL string

	// TimeoutSeconds is the single global request timeout.
	TimeoutSeconds int

	// RateLimit caps outbound requests per second. Zero disables pacing.
	RateLimit float64
}

// StorageSettings holds persisted view-state configuration.
type StorageSettings struct {
	Backend StorageBackend

	// RedisURL is used when Backend is StorageRedis.
	RedisURL string
}

// AppSettings holds all application settings.
type AppSettings struct {
	API     APISettings
	Storage StorageSettings
}

// Defaults.
const (
	DefaultAPIBaseURL     = "http://localhost:8001"
	DefaultTimeoutSeconds = 300
	DefaultRateLimit      = 5
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RateLimit:      DefaultRateLimit,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageRedis, StorageMemory}
}
