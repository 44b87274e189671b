package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/Chronicler/internal/logger"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the API server is reachable",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := newAPIClient(cfg)
	h, err := c.Health(cmd.Context())
	if err != nil {
		return explainAPIError(err, c.BaseURL())
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, h)
	}

	title := cases.Title(language.English)
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("%s at %s", title.String(h.Status), c.BaseURL())))
	fmt.Fprintf(out, "  Server time: %s\n", h.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(out, "  Writer:      %s\n", title.String(h.Strategy))
	fmt.Fprintf(out, "  CLI version: %s\n", GetVersion())
	if !h.AIConfigured {
		fmt.Fprintln(out, ui.Warn("AI changelogs are off. Set OPENAI_API_KEY (or llm.provider and its key) where the server runs."))
	}

	if logs, err := logger.ListCrashLogs(); err == nil && len(logs) > 0 {
		fmt.Fprintln(out, ui.Warn(fmt.Sprintf("%d crash log(s) recorded, newest: %s", len(logs), logs[len(logs)-1])))
	}
	return nil
}
