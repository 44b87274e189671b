// Package config provides centralized configuration for Chronicler.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/llm"
)

const (
	// ConfigName is the config file base name (.chronicler.yaml).
	ConfigName = ".chronicler"

	// EnvPrefix prefixes environment overrides, e.g. CHRONICLER_SERVER_PORT.
	EnvPrefix = "CHRONICLER"

	// ProjectConfigFile is the file written by `chronicler init`.
	ProjectConfigFile = ConfigName + ".yaml"
)

// Service defaults
const (
	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultServerPort = 8000
	DefaultDBPath     = "changelog.db"
	DefaultEditorCmd  = "nano"
)

// DefaultAllowedOrigins lists the local frontends allowed by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// DefaultEditor returns $EDITOR, or nano when unset.
func DefaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return DefaultEditorCmd
}

// SetDefaults registers every default on the global viper instance.
func SetDefaults() {
	viper.SetDefault("api.baseURL", DefaultAPIBaseURL)
	viper.SetDefault("editor", DefaultEditor())
	viper.SetDefault("publicURL", "")
	viper.SetDefault("lookbackDays", gitlog.DefaultLookbackDays)
	viper.SetDefault("excludePatterns", filter.DefaultPatterns)

	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("server.dbPath", DefaultDBPath)
	viper.SetDefault("server.allowedOrigins", DefaultAllowedOrigins)

	viper.SetDefault("llm.maxTokens", llm.DefaultMaxTokens)
	viper.SetDefault("llm.temperature", llm.DefaultTemperature)
	viper.SetDefault("llm.timeout", llm.DefaultTimeout)
}
