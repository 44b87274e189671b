/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/config"
	"github.com/josephgoksu/Chronicler/internal/editor"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/logger"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/server"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

var (
	generateWindow  windowFlags
	generatePreview bool
	generateOutput  string
	generateLocal   bool
	generateNoEdit  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a changelog from recent commits",
	Long: `Generate a changelog from the commits of a repository.

By default the last 7 days are used. Give --from and --to to select a commit
range instead (commits reachable from --to but not from --from).

Examples:
  chronicler generate                       # last 7 days
  chronicler generate -d 30 -o CHANGES.md   # last 30 days, saved to a file
  chronicler generate --from v1.0.0 --to HEAD --preview
  chronicler generate --local               # run without an API server`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateWindow.register(generateCmd)
	generateCmd.Flags().BoolVarP(&generatePreview, "preview", "p", false, "only show the changelog, do not save it")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "file to write the changelog to (default: a temp file)")
	generateCmd.Flags().BoolVar(&generateLocal, "local", false, "generate in-process instead of calling the API server")
	generateCmd.Flags().BoolVar(&generateNoEdit, "no-edit", false, "skip the offer to edit before saving")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req, err := generateWindow.request(cmd, cfg)
	if err != nil {
		return err
	}

	res, err := fetchChangelog(cmd, cfg, req, generateLocal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, res)
	}

	renderResult(out, res)
	if generatePreview {
		return nil
	}

	doc := editor.Document{Title: res.Title, Content: res.Content}
	doc, err = maybeEdit(cmd.Context(), cfg, doc, generateNoEdit)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	path := generateOutput
	if path == "" {
		path, err = editor.SaveTemp(fs, doc)
	} else {
		err = editor.Save(fs, path, doc)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Success("Changelog saved to "+path))
	return nil
}

// fetchChangelog generates through the API server, or in-process when local is set.
func fetchChangelog(cmd *cobra.Command, cfg config.AppConfig, req server.GenerateRequest, local bool) (*pipeline.Result, error) {
	logger.SetLastRequest(fmt.Sprintf("repo=%s days=%d from=%s to=%s", req.RepoPath, *req.Days, req.FromCommit, req.ToCommit))

	spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Generating changelog...")
	if ui.IsInteractive() && !isJSON() {
		spinner.Start()
	}
	defer spinner.Stop()

	if local {
		gen, err := newGenerator(cmd.Context())
		if err != nil {
			return nil, err
		}
		window, err := gitlog.NewWindow(*req.Days, req.FromCommit, req.ToCommit)
		if err != nil {
			return nil, err
		}
		return gen.Generate(cmd.Context(), pipeline.Request{
			RepoPath:        req.RepoPath,
			Window:          window,
			ExcludePatterns: req.ExcludePatterns,
		})
	}

	c := newAPIClient(cfg)
	res, err := c.Generate(cmd.Context(), req)
	if err != nil {
		return nil, explainAPIError(err, c.BaseURL())
	}
	return res, nil
}

func renderResult(out io.Writer, res *pipeline.Result) {
	fmt.Fprintln(out, ui.StyleSectionTitle.Render("Summary"))
	fmt.Fprintln(out, ui.SummaryTable(res.Summary, res.Strategy))
	fmt.Fprintln(out, ui.Panel(res.Title, res.Content))
}

// maybeEdit offers to open doc in the configured editor.
func maybeEdit(ctx context.Context, cfg config.AppConfig, doc editor.Document, skip bool) (editor.Document, error) {
	if skip || !ui.IsInteractive() {
		return doc, nil
	}
	edit, err := ui.Confirm("Would you like to edit the changelog?", false)
	if err != nil || !edit {
		return doc, err
	}
	return editor.Edit(ctx, cfg.Editor, doc)
}
