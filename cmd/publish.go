/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/editor"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/server"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

var errMissingContent = errors.New("changelog content is empty")

var (
	publishVersion string
	publishTitle   string
	publishFile    string
	publishWindow  windowFlags
	publishYes     bool
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a changelog under a version",
	Long: `Publish a changelog to the API server.

With --file, the changelog is read from a markdown file whose first "# " line
is used as the title. Without --file, a changelog is generated first, shown
for review and optionally edited.

Examples:
  chronicler publish -v v1.2.0
  chronicler publish -v v1.2.0 -f CHANGES.md
  chronicler publish -v v1.2.0 --from v1.1.0 --to HEAD -t "Spring release"`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVarP(&publishVersion, "version", "v", "", "version to publish (required)")
	publishCmd.Flags().StringVarP(&publishTitle, "title", "t", "", "changelog title (overrides the generated or file title)")
	publishCmd.Flags().StringVarP(&publishFile, "file", "f", "", "markdown file to publish")
	publishCmd.Flags().BoolVarP(&publishYes, "yes", "y", false, "publish without asking for confirmation")
	publishWindow.register(publishCmd)
	_ = publishCmd.MarkFlagRequired("version")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fallbackTitle := "Release " + publishVersion

	var (
		doc     editor.Document
		commits []gitlog.Commit
	)
	if publishFile != "" {
		doc, err = editor.Load(afero.NewOsFs(), publishFile, fallbackTitle)
		if err != nil {
			return err
		}
	} else {
		req, err := publishWindow.request(cmd, cfg)
		if err != nil {
			return err
		}
		res, err := fetchChangelog(cmd, cfg, req, false)
		if err != nil {
			return err
		}
		if !isJSON() {
			renderResult(out, res)
		}
		doc = editor.Document{Title: res.Title, Content: res.Content}
		commits = res.Commits

		doc, err = maybeEdit(cmd.Context(), cfg, doc, publishYes)
		if err != nil {
			return err
		}
	}
	if publishTitle != "" {
		doc.Title = publishTitle
	}
	if doc.Content == "" {
		return errMissingContent
	}

	if !publishYes {
		ok, err := ui.Confirm(fmt.Sprintf("Publish %q as %s?", doc.Title, publishVersion), true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	c := newAPIClient(cfg)
	saved, err := c.Publish(cmd.Context(), server.PublishRequest{
		Version:    publishVersion,
		Title:      doc.Title,
		Content:    doc.Content,
		RawCommits: commits,
	})
	if err != nil {
		return explainAPIError(err, c.BaseURL())
	}

	if isJSON() {
		return printJSON(out, saved)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Published %s: %s", saved.Version, saved.Title)))
	if cfg.PublicURL != "" {
		fmt.Fprintln(out, "View at: "+cfg.PublicURL)
	}
	return nil
}
