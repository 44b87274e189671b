package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppConfig holds the non-LLM application settings.
type AppConfig struct {
	API             APIConfig    `mapstructure:"api" yaml:"api"`
	Editor          string       `mapstructure:"editor" yaml:"editor" validate:"required"`
	PublicURL       string       `mapstructure:"publicURL" yaml:"publicURL,omitempty" validate:"omitempty,url"`
	LookbackDays    int          `mapstructure:"lookbackDays" yaml:"lookbackDays" validate:"min=0"`
	ExcludePatterns []string     `mapstructure:"excludePatterns" yaml:"excludePatterns"`
	Server          ServerConfig `mapstructure:"server" yaml:"server,omitempty"`
}

// APIConfig locates the API server used by client commands.
type APIConfig struct {
	BaseURL string `mapstructure:"baseURL" yaml:"baseURL" validate:"required,url"`
}

// ServerConfig configures `chronicler serve`.
type ServerConfig struct {
	Port           int      `mapstructure:"port" yaml:"port,omitempty" validate:"min=1,max=65535"`
	DBPath         string   `mapstructure:"dbPath" yaml:"dbPath,omitempty" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" yaml:"allowedOrigins,omitempty"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// LoadAppConfig unmarshals the global viper state into an AppConfig and validates it.
func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
