package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/Chronicler/internal/config"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

var configEdit bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration",
	Long: `Print the effective configuration. With --edit, prompt for the API address,
editor and public URL and save them to the active config file
(./.chronicler.yaml when none is in use).`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "edit and save settings interactively")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configEdit {
		if err := editConfig(&cfg); err != nil {
			return err
		}
		path := viper.ConfigFileUsed()
		if path == "" {
			path = config.ProjectConfigFile
		}
		if err := saveEditedConfig(path, cfg); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("Saved "+path))
	}

	if isJSON() {
		return printJSON(out, cfg)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "(not set)"
	}
	t := &ui.Table{
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"api.baseURL", cfg.API.BaseURL},
			{"editor", cfg.Editor},
			{"publicURL", publicURL},
			{"lookbackDays", fmt.Sprint(cfg.LookbackDays)},
			{"excludePatterns", strings.Join(cfg.ExcludePatterns, "  ")},
			{"llm.provider", string(llmCfg.Provider)},
			{"llm.model", llmCfg.Model},
			{"llm.apiKey", maskKey(llmCfg.APIKey)},
		},
	}
	fmt.Fprint(out, t.Render())
	return nil
}

func editConfig(cfg *config.AppConfig) error {
	var err error
	if cfg.API.BaseURL, err = ui.Prompt("API base URL", cfg.API.BaseURL); err != nil {
		return err
	}
	if cfg.Editor, err = ui.Prompt("Editor command", cfg.Editor); err != nil {
		return err
	}
	if cfg.PublicURL, err = ui.Prompt("Public changelog URL (optional)", cfg.PublicURL); err != nil {
		return err
	}
	return nil
}

// saveEditedConfig writes the edited fields into path and keeps every other
// setting already in the file. A new file starts from the effective config.
func saveEditedConfig(path string, cfg config.AppConfig) error {
	project := config.ProjectConfigFrom(cfg)
	if exists, err := afero.Exists(projectFs, path); err != nil {
		return err
	} else if exists {
		if project, err = config.LoadProjectConfig(projectFs, path); err != nil {
			return err
		}
	}

	project.API.BaseURL = cfg.API.BaseURL
	project.Editor = cfg.Editor
	project.PublicURL = cfg.PublicURL
	return config.SaveProjectConfig(projectFs, path, project)
}

// maskKey shows only the last four characters of a credential.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
