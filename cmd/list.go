/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Chronicler/internal/store"
	"github.com/josephgoksu/Chronicler/internal/ui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published changelogs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := newAPIClient(cfg)
	list, err := c.List(cmd.Context())
	if err != nil {
		return explainAPIError(err, c.BaseURL())
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No changelogs published yet.")
		fmt.Fprintln(out, "Publish one with: chronicler publish -v <version>")
		return nil
	}

	fmt.Fprint(out, changelogTable(list).Render())
	return nil
}

func changelogTable(list []store.Changelog) *ui.Table {
	t := &ui.Table{Headers: []string{"Version", "Title", "Published"}}
	for _, c := range list {
		published := "-"
		if c.PublishedAt != nil {
			published = c.PublishedAt.Format(time.DateOnly)
		}
		t.Rows = append(t.Rows, []string{c.Version, ui.Truncate(c.Title, 50), published})
	}
	return t
}
