package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Show a published changelog",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := newAPIClient(cfg)
	cl, err := c.Get(cmd.Context(), args[0])
	if err != nil {
		return explainAPIError(err, c.BaseURL())
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, cl)
	}

	fmt.Fprintln(out, ui.Panel(cl.Title, cl.Content))
	if cl.PublishedAt != nil {
		fmt.Fprintln(out, ui.StyleSubtle.Render(fmt.Sprintf("Version %s, published %s", cl.Version, cl.PublishedAt.Format(time.DateOnly))))
	}
	return nil
}
