package changelog

import (
	"context"
	"strings"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
)

// SimpleComposer writes a changelog by keyword classification.
type SimpleComposer struct{}

// Strategy reports the writer name.
func (SimpleComposer) Strategy() string {
	return StrategySimple
}

// Compose renders commits grouped by category.
func (SimpleComposer) Compose(_ context.Context, commits []gitlog.Commit) string {
	return RenderSimple(commits)
}

// RenderSimple buckets each commit message with Classify and renders the
// non-empty buckets in fixed order. Messages are kept verbatim.
func RenderSimple(commits []gitlog.Commit) string {
	buckets := make(map[Category][]string, len(categoryOrder))
	for _, c := range commits {
		cat := Classify(c.Message)
		buckets[cat] = append(buckets[cat], c.Message)
	}

	var sb strings.Builder
	for _, cat := range categoryOrder {
		msgs := buckets[cat]
		if len(msgs) == 0 {
			continue
		}
		sb.WriteString("## ")
		sb.WriteString(cat.String())
		sb.WriteString("\n")
		for _, m := range msgs {
			sb.WriteString("- ")
			sb.WriteString(m)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
