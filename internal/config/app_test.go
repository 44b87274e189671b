package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Chronicler/internal/filter"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("EDITOR", "vim")
	SetDefaults()

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "vim", cfg.Editor)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, filter.DefaultPatterns, cfg.ExcludePatterns)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDBPath, cfg.Server.DBPath)
	assert.Equal(t, DefaultAllowedOrigins, cfg.Server.AllowedOrigins)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"bad base url", "api.baseURL", "not a url"},
		{"negative lookback", "lookbackDays", -3},
		{"port out of range", "server.port", 70000},
		{"bad public url", "publicURL", "::::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViperForTest(t)
			SetDefaults()
			viper.Set(tt.key, tt.val)

			_, err := LoadAppConfig()

			assert.Error(t, err)
		})
	}
}

func TestDefaultEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	assert.Equal(t, "nano", DefaultEditor())

	t.Setenv("EDITOR", "code --wait")
	assert.Equal(t, "code --wait", DefaultEditor())
}
