package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ProjectConfig is the subset of settings persisted by `init` and `config`.
type ProjectConfig struct {
	API             APIConfig `yaml:"api"`
	Editor          string    `yaml:"editor,omitempty"`
	PublicURL       string    `yaml:"publicURL,omitempty"`
	LookbackDays    *int      `yaml:"lookbackDays,omitempty"` // nil when unset; 0 is a valid window
	ExcludePatterns []string  `yaml:"excludePatterns,omitempty"`
}

// ProjectConfigFrom extracts the persisted settings from a loaded AppConfig.
func ProjectConfigFrom(cfg AppConfig) ProjectConfig {
	days := cfg.LookbackDays
	return ProjectConfig{
		API:             cfg.API,
		Editor:          cfg.Editor,
		PublicURL:       cfg.PublicURL,
		LookbackDays:    &days,
		ExcludePatterns: cfg.ExcludePatterns,
	}
}

// LoadProjectConfig reads path. A missing file yields the zero config and no error.
func LoadProjectConfig(fsys afero.Fs, path string) (ProjectConfig, error) {
	var cfg ProjectConfig

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveProjectConfig writes cfg as YAML to path, creating parent directories.
func SaveProjectConfig(fsys afero.Fs, path string, cfg ProjectConfig) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	header := []byte("# Chronicler configuration\n")
	if err := afero.WriteFile(fsys, path, append(header, data...), 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
