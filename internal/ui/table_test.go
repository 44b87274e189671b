package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"Version", "Title", "Published"},
		Rows: [][]string{
			{"v1.0.0", "Initial release", "2024-04-01"},
			{"v1.10.0-rc1", "Changes - April 03, 2024", "2024-04-03"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 11, widths[0])
	assert.Equal(t, 24, widths[1])
	assert.Equal(t, 10, widths[2])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"a", "This is a very long description that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"Version", "Title"},
		Rows: [][]string{
			{"v1", "Alice"},
			{"v2", "Bob"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "Version")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}

	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "This is w…")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"longer than ten", 10, "longer th…"},
		{"🚀 rocket launch", 5, "🚀 ro…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), tt.in)
	}
}
