package changelog

import (
	"context"
	"strings"
	"testing"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/stretchr/testify/assert"
)

func commitsFor(messages ...string) []gitlog.Commit {
	out := make([]gitlog.Commit, 0, len(messages))
	for _, m := range messages {
		out = append(out, gitlog.Commit{Hash: "abcd1234", Message: m, Author: "dev"})
	}
	return out
}

func TestRenderSimple_AllBuckets(t *testing.T) {
	got := RenderSimple(commitsFor(
		"Refactor internals",
		"Improve load time",
		"Fix crash on startup",
		"Add dark mode toggle",
		"feat: add export",
	))

	want := strings.Join([]string{
		"## 🚀 New Features",
		"- Add dark mode toggle",
		"- feat: add export",
		"",
		"## 🐛 Bug Fixes",
		"- Fix crash on startup",
		"",
		"## 💡 Improvements",
		"- Improve load time",
		"",
		"## 📝 Other Changes",
		"- Refactor internals",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestRenderSimple_SkipsEmptyBuckets(t *testing.T) {
	got := RenderSimple(commitsFor("Refactor internals"))

	assert.Equal(t, "## 📝 Other Changes\n- Refactor internals", got)
	assert.NotContains(t, got, "New Features")
}

func TestRenderSimple_Empty(t *testing.T) {
	assert.Equal(t, "", RenderSimple(nil))
}

func TestRenderSimple_KeepsMessagesVerbatim(t *testing.T) {
	long := "fix: " + strings.TrimSpace(strings.Repeat("very long message ", 40))
	got := RenderSimple(commitsFor(long))

	assert.Equal(t, "## 🐛 Bug Fixes\n- "+long, got)
}

func TestRenderSimple_EveryCommitLandsOnce(t *testing.T) {
	msgs := []string{"add a", "fix b", "update c", "misc d", "new e", "patch f"}
	got := RenderSimple(commitsFor(msgs...))

	bullets := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "- ") {
			bullets++
		}
	}
	assert.Equal(t, len(msgs), bullets)
}

func TestSimpleComposer(t *testing.T) {
	var c Composer = SimpleComposer{}

	assert.Equal(t, StrategySimple, c.Strategy())
	assert.Equal(t, RenderSimple(commitsFor("fix x")), c.Compose(context.Background(), commitsFor("fix x")))
}
