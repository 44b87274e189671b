package gitlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Source reads commits from repositories on the local filesystem.
// A Source holds no repository state; every Fetch opens its own handle.
type Source struct {
	now func() time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithClock overrides the clock used to compute day windows.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// NewSource creates a commit source.
func NewSource(opts ...Option) *Source {
	s := &Source{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the commits selected by window, newest first.
// An empty selection is not an error.
func (s *Source) Fetch(ctx context.Context, repoPath string, window Window) ([]Commit, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	var raw []*object.Commit
	switch w := window.(type) {
	case Range:
		raw, err = s.commitsInRange(ctx, repo, w)
	case SinceDays:
		if w.Days < 0 {
			return nil, fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidWindow, w.Days)
		}
		raw, err = s.commitsSince(ctx, repo, Since(s.now(), w.Days))
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, window)
	}
	if err != nil {
		return nil, err
	}

	commits := make([]Commit, 0, len(raw))
	for _, c := range raw {
		commits = append(commits, Commit{
			Hash:    shortHash(c.Hash),
			Message: strings.TrimSpace(c.Message),
			Author:  c.Author.Name,
			Date:    c.Committer.When,
			Files:   changedFiles(c),
		})
	}
	return commits, nil
}

// Since returns midnight of now's day minus days, in now's location.
func Since(now time.Time, days int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -days)
}

// IsRepository reports whether path is inside a git working tree.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRepository, path, err)
	}
	return repo, nil
}

func (s *Source) commitsSince(ctx context.Context, repo *git.Repository, since time.Time) ([]*object.Commit, error) {
	iter, err := repo.Log(&git.LogOptions{
		Order: git.LogOrderCommitterTime,
		Since: &since,
	})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// no HEAD yet
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return collect(ctx, iter, nil)
}

func (s *Source) commitsInRange(ctx context.Context, repo *git.Repository, r Range) ([]*object.Commit, error) {
	from, err := resolve(repo, r.From)
	if err != nil {
		return nil, err
	}
	to, err := resolve(repo, r.To)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]struct{})
	fromIter, err := repo.Log(&git.LogOptions{From: *from})
	if err != nil {
		return nil, fmt.Errorf("read log from %s: %w", r.From, err)
	}
	defer fromIter.Close()
	err = fromIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		excluded[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", r.From, err)
	}

	toIter, err := repo.Log(&git.LogOptions{
		From:  *to,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read log from %s: %w", r.To, err)
	}
	return collect(ctx, toIter, excluded)
}

func resolve(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownRevision, ref, err)
	}
	return hash, nil
}

func collect(ctx context.Context, iter object.CommitIter, skip map[plumbing.Hash]struct{}) ([]*object.Commit, error) {
	defer iter.Close()

	var out []*object.Commit
	err := iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := skip[c.Hash]; ok {
			return nil
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate commits: %w", err)
	}
	return out, nil
}

// changedFiles lists paths that differ between c and its first parent.
// Failures are logged and yield an empty list.
func changedFiles(c *object.Commit) []string {
	files := []string{}
	if c.NumParents() == 0 {
		return files
	}

	parent, err := c.Parent(0)
	if err != nil {
		slog.Debug("skipping file list: parent lookup failed", "commit", c.Hash.String(), "error", err)
		return files
	}
	parentTree, err := parent.Tree()
	if err != nil {
		slog.Debug("skipping file list: parent tree failed", "commit", c.Hash.String(), "error", err)
		return files
	}
	tree, err := c.Tree()
	if err != nil {
		slog.Debug("skipping file list: tree failed", "commit", c.Hash.String(), "error", err)
		return files
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		slog.Debug("skipping file list: diff failed", "commit", c.Hash.String(), "error", err)
		return files
	}

	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		files = append(files, name)
	}
	return files
}

func shortHash(h plumbing.Hash) string {
	s := h.String()
	if len(s) > ShortHashLen {
		return s[:ShortHashLen]
	}
	return s
}
