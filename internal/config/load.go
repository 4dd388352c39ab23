package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any file or environment source.
const (
	defaultLogLevel          = "info"
	defaultDatabasePath      = "lexitrack.db"
	defaultDebounceMillis    = 150
	defaultDeleteGraceMillis = 300
	defaultStoryModel        = "gemini-2.0-flash"
)

// Load reads configuration from an optional YAML config file and from
// environment variables, with environment variables taking precedence.
// Returns a populated Config struct or an error if loading/validation fails.
//
// The config file is looked up as "lexitrack.yaml" in the working directory
// unless an explicit path is given. A missing file is not an error; the
// defaults and environment are enough to run. Environment variables use the
// LEXITRACK_ prefix with underscores, e.g. LEXITRACK_DATABASE_PATH.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("repository.debounce_millis", defaultDebounceMillis)
	v.SetDefault("repository.delete_grace_millis", defaultDeleteGraceMillis)
	v.SetDefault("story.model_name", defaultStoryModel)

	// Optional keys get empty defaults so environment overrides bind
	// through Unmarshal even when no config file sets them.
	v.SetDefault("story.gemini_api_key", "")
	v.SetDefault("translation.api_key", "")
	v.SetDefault("translation.region", "")
	v.SetDefault("translation.proxy_url", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("lexitrack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LEXITRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
