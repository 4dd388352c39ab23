package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"     validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"    validate:"required"`
	Repository  RepositoryConfig  `mapstructure:"repository"  validate:"required"`
	Translation TranslationConfig `mapstructure:"translation"`
	Story       StoryConfig       `mapstructure:"story"`
}

// LoggingConfig contains all logging-related configuration settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path, or ":memory:" for an
	// ephemeral store.
	Path string `mapstructure:"path" validate:"required"`
}

// RepositoryConfig contains the timing tunables of the reactive repository
// layer. The defaults are tuned constants; change them only deliberately.
type RepositoryConfig struct {
	// DebounceMillis is the quiet window of the change coalescer.
	DebounceMillis int `mapstructure:"debounce_millis" validate:"gte=0"`

	// DeleteGraceMillis is how long a batch delete waits for the store to
	// settle before lifting refresh suppression.
	DeleteGraceMillis int `mapstructure:"delete_grace_millis" validate:"gte=0"`
}

// DebounceWindow returns the coalescer quiet window as a duration.
func (c RepositoryConfig) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// DeleteGrace returns the batch-delete settle period as a duration.
func (c RepositoryConfig) DeleteGrace() time.Duration {
	return time.Duration(c.DeleteGraceMillis) * time.Millisecond
}

// TranslationConfig contains the translation provider settings. All fields
// are optional; an unconfigured provider reports ErrNotConfigured instead
// of failing at startup.
type TranslationConfig struct {
	// APIKey is the Microsoft Translator subscription key.
	APIKey string `mapstructure:"api_key"`

	// Region is the Azure resource region paired with the key.
	Region string `mapstructure:"region"`

	// ProxyURL, when set, routes translation calls through a proxy that
	// holds the credentials instead of the client.
	ProxyURL string `mapstructure:"proxy_url" validate:"omitempty,url"`
}

// StoryConfig contains the story generation (LLM) settings.
type StoryConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}
