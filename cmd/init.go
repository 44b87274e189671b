package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/config"
	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

var (
	initPublicURL string
	initExclude   []string
	initForce     bool

	// projectFs is where project config files are written.
	projectFs = afero.NewOsFs()
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up Chronicler for the current repository",
	Long: `Write a .chronicler.yaml in the current git repository with the API
address, public changelog URL and commit exclusion patterns.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initPublicURL, "public-url", "", "public URL where changelogs are shown")
	initCmd.Flags().StringSliceVar(&initExclude, "exclude", nil, "extra commit message patterns to exclude")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .chronicler.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if !gitlog.IsRepository(wd) {
		return errors.New("not a git repository; run chronicler init from inside one")
	}

	path := filepath.Join(wd, config.ProjectConfigFile)
	if _, err := projectFs.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", config.ProjectConfigFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	publicURL := initPublicURL
	if !cmd.Flags().Changed("public-url") {
		if publicURL, err = ui.Prompt("Public changelog URL (optional)", cfg.PublicURL); err != nil {
			return err
		}
	}

	extra := initExclude
	if !cmd.Flags().Changed("exclude") {
		answer, err := ui.Prompt("Extra exclude patterns, comma separated (optional)", "")
		if err != nil {
			return err
		}
		extra = splitPatterns(answer)
	}

	patterns := mergePatterns(cfg.ExcludePatterns, extra)
	compiled, err := filter.Compile(patterns)
	if err != nil {
		return err
	}

	project := config.ProjectConfigFrom(cfg)
	project.PublicURL = publicURL
	project.ExcludePatterns = patterns
	if err := config.SaveProjectConfig(projectFs, path, project); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Success("Wrote "+config.ProjectConfigFile))
	fmt.Fprintf(out, "  %d exclude patterns\n", compiled.Len())
	fmt.Fprintln(out, "Next: chronicler serve, then chronicler generate")
	return nil
}

func splitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergePatterns appends extra to base, skipping duplicates.
func mergePatterns(base, extra []string) []string {
	out := slices.Clone(base)
	for _, p := range extra {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
