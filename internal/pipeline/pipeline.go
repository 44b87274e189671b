// Package pipeline runs commit extraction, filtering and changelog writing
// as one request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/josephgoksu/Chronicler/internal/changelog"
	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
)

// Errors reported by Generate besides those of the commit source and filter.
var (
	ErrNoCommitsFound    = errors.New("no commits found in the specified range")
	ErrNoRelevantCommits = errors.New("no relevant commits found after filtering")
	ErrInternal          = errors.New("internal error")
)

// CommitSource reads commits for a window, newest first.
type CommitSource interface {
	Fetch(ctx context.Context, repoPath string, window gitlog.Window) ([]gitlog.Commit, error)
}

// Request describes one changelog generation.
type Request struct {
	RepoPath        string
	Window          gitlog.Window
	ExcludePatterns []string
}

// Result is the generated changelog plus the commits and stats behind it.
type Result struct {
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Commits  []gitlog.Commit   `json:"raw_commits"`
	Summary  changelog.Summary `json:"summary"`
	Strategy string            `json:"strategy"`
}

// Generator wires a commit source to a changelog writer.
type Generator struct {
	source   CommitSource
	composer changelog.Composer
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for fallback titles.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator.
func NewGenerator(source CommitSource, composer changelog.Composer, opts ...Option) *Generator {
	g := &Generator{
		source:   source,
		composer: composer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Strategy reports which changelog writer the generator uses.
func (g *Generator) Strategy() string {
	return g.composer.Strategy()
}

// Generate fetches, filters and writes a changelog for req.
//
// Known failures are returned as is so callers can tell them apart with
// errors.Is; anything else, including a panic, is logged and wrapped in
// ErrInternal.
func (g *Generator) Generate(ctx context.Context, req Request) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("changelog generation panicked",
				"repo", req.RepoPath, "panic", r, "stack", string(debug.Stack()))
			res, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	res, err = g.generate(ctx, req)
	if err != nil && !isKnown(err) {
		slog.Error("changelog generation failed",
			"repo", req.RepoPath, "window", windowString(req.Window), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return res, err
}

func (g *Generator) generate(ctx context.Context, req Request) (*Result, error) {
	if req.Window == nil {
		return nil, fmt.Errorf("%w: missing window", gitlog.ErrInvalidWindow)
	}

	patterns, err := filter.Compile(req.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	commits, err := g.source.Fetch(ctx, req.RepoPath, req.Window)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, ErrNoCommitsFound
	}

	filtered := patterns.Apply(commits)
	if len(filtered) == 0 {
		return nil, ErrNoRelevantCommits
	}

	slog.Debug("commits selected",
		"repo", req.RepoPath, "window", req.Window.String(),
		"patterns", patterns.Len(), "total", len(commits), "kept", len(filtered))

	return &Result{
		Title:    changelog.Title(filtered, g.now()),
		Content:  g.composer.Compose(ctx, filtered),
		Commits:  filtered,
		Summary:  changelog.Summarize(commits, filtered),
		Strategy: g.composer.Strategy(),
	}, nil
}

var knownErrors = []error{
	gitlog.ErrInvalidRepository,
	gitlog.ErrUnknownRevision,
	gitlog.ErrInvalidWindow,
	filter.ErrInvalidPattern,
	ErrNoCommitsFound,
	ErrNoRelevantCommits,
}

func isKnown(err error) bool {
	for _, k := range knownErrors {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

func windowString(w gitlog.Window) string {
	if w == nil {
		return ""
	}
	return w.String()
}
