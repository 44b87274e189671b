package filter

import (
	"testing"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitsFor(messages ...string) []gitlog.Commit {
	out := make([]gitlog.Commit, 0, len(messages))
	for i, m := range messages {
		out = append(out, gitlog.Commit{Hash: string(rune('a' + i)), Message: m})
	}
	return out
}

func mustCompile(t *testing.T, patterns []string) *Patterns {
	t.Helper()
	p, err := Compile(patterns)
	require.NoError(t, err)
	return p
}

func messages(commits []gitlog.Commit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.Message)
	}
	return out
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile([]string{`^ok:`, `([unclosed`})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "([unclosed")
}

func TestApply_EmptySetIsIdentity(t *testing.T) {
	in := commitsFor("chore: x", "feat: y", "Merge pull request #1")

	p, err := Compile(nil)
	require.NoError(t, err)

	assert.Equal(t, in, p.Apply(in))
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, len(DefaultPatterns), mustCompile(t, DefaultPatterns).Len())
}

func TestApply_DefaultPatterns(t *testing.T) {
	p := mustCompile(t, DefaultPatterns)

	tests := []struct {
		message  string
		excluded bool
	}{
		{"chore: bump deps", true},
		{"CHORE: bump", true},
		{"Docs: update readme", true},
		{"test: add cases", true},
		{"ci: cache modules", true},
		{"build: use go 1.24", true},
		{"Merge pull request #42 from org/branch", true},
		{"merge pull request #7", true},
		{"feat: add export", false},
		{"fix: null pointer", false},
		{"refactor: mention chore: later", false},
		{"update docs: wording", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.excluded, p.Excludes(tt.message))
		})
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	p := mustCompile(t, []string{`^wip`, `skip`})
	in := commitsFor("one", "WIP two", "three", "please skip four", "five")

	got := p.Apply(in)

	assert.Equal(t, []string{"one", "three", "five"}, messages(got))
	assert.Equal(t, "a", got[0].Hash)
	assert.Equal(t, "c", got[1].Hash)
	assert.Equal(t, "e", got[2].Hash)
}

func TestApply_SearchNotFullMatch(t *testing.T) {
	p := mustCompile(t, []string{`secret`})

	assert.True(t, p.Excludes("remove the SECRET flag"))
	assert.False(t, p.Excludes("nothing to see"))
}

func TestApply_PatternOrderIrrelevant(t *testing.T) {
	in := commitsFor("chore: a", "feat: b", "ci: c", "fix: d")

	forward := mustCompile(t, []string{`^chore:`, `^ci:`}).Apply(in)
	backward := mustCompile(t, []string{`^ci:`, `^chore:`}).Apply(in)

	assert.Equal(t, forward, backward)
}

func TestApply_NilPatterns(t *testing.T) {
	var p *Patterns
	in := commitsFor("chore: x")

	assert.Equal(t, in, p.Apply(in))
}
