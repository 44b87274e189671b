package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/client"
	"github.com/josephgoksu/Chronicler/internal/config"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/server"
)

func isJSON() bool {
	return jsonOutput
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func newAPIClient(cfg config.AppConfig) *client.Client {
	return client.New(cfg.API.BaseURL)
}

// windowFlags are shared by generate and publish.
type windowFlags struct {
	days     int
	from     string
	to       string
	repoPath string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.days, "days", "d", 0, "number of days to look back (default from config, 7)")
	cmd.Flags().StringVar(&f.from, "from", "", "starting commit, tag or branch (exclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "ending commit, tag or branch (inclusive)")
	cmd.Flags().StringVarP(&f.repoPath, "repo", "r", ".", "path to the git repository")
}

// request builds the API payload; days falls back to the configured lookback.
func (f *windowFlags) request(cmd *cobra.Command, cfg config.AppConfig) (server.GenerateRequest, error) {
	if (f.from == "") != (f.to == "") {
		return server.GenerateRequest{}, errors.New("--from and --to must be given together")
	}

	days := cfg.LookbackDays
	if cmd.Flags().Changed("days") {
		days = f.days
	}
	if _, err := gitlog.NewWindow(days, f.from, f.to); err != nil {
		return server.GenerateRequest{}, err
	}

	repoPath, err := filepath.Abs(f.repoPath)
	if err != nil {
		return server.GenerateRequest{}, fmt.Errorf("resolve repository path: %w", err)
	}

	return server.GenerateRequest{
		RepoPath:        repoPath,
		Days:            &days,
		FromCommit:      f.from,
		ToCommit:        f.to,
		ExcludePatterns: cfg.ExcludePatterns,
	}, nil
}

// explainAPIError turns client errors into messages a user can act on.
func explainAPIError(err error, baseURL string) error {
	if errors.Is(err, client.ErrServerUnreachable) {
		return fmt.Errorf("cannot reach the Chronicler API at %s; start it with \"chronicler serve\" or set api.baseURL", baseURL)
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case client.IsCode(err, server.CodeNoCommitsFound):
		return errors.New("no commits found in the selected range; try a larger --days value or check --from/--to")
	case client.IsCode(err, server.CodeNoRelevantCommits):
		return errors.New("every commit was excluded by the filter patterns; adjust excludePatterns in your config")
	case client.IsCode(err, server.CodeInvalidRepository):
		return fmt.Errorf("not a git repository on the server: %s", apiErr.Detail)
	case client.IsCode(err, server.CodeVersionExists):
		return fmt.Errorf("%s; choose a different --version", apiErr.Detail)
	default:
		detail := strings.TrimSpace(apiErr.Detail)
		if detail == "" {
			detail = apiErr.Code
		}
		return fmt.Errorf("server error (%d): %s", apiErr.StatusCode, detail)
	}
}
