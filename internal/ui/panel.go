package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/Chronicler/internal/changelog"
)

// Panel renders a titled, bordered block around markdown content.
func Panel(title, content string) string {
	body := StyleTitle.Render(title) + "\n\n" + strings.TrimSpace(content)
	return StylePanel.Render(body)
}

// SummaryTable renders the statistics of a generation run.
func SummaryTable(s changelog.Summary, strategy string) string {
	t := &Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total commits", fmt.Sprint(s.TotalCommits)},
			{"After filtering", fmt.Sprint(s.FilteredCommits)},
			{"Authors", fmt.Sprint(len(s.Authors))},
			{"Date range", dateRange(s.DateRange)},
		},
	}
	if strategy != "" {
		t.Rows = append(t.Rows, []string{"Writer", strategy})
	}
	return t.Render()
}

func dateRange(r changelog.DateRange) string {
	if r.From == nil || r.To == nil {
		return "-"
	}
	return r.From.Format(time.DateOnly) + " → " + r.To.Format(time.DateOnly)
}
