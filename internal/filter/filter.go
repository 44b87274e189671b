// Package filter drops noise commits whose message matches an exclusion pattern.
package filter

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
)

// ErrInvalidPattern is returned when an exclusion pattern does not compile.
var ErrInvalidPattern = errors.New("invalid exclusion pattern")

// DefaultPatterns exclude conventional-commit housekeeping and merge commits.
var DefaultPatterns = []string{
	`^chore:`,
	`^docs:`,
	`^test:`,
	`Merge pull request`,
	`^ci:`,
	`^build:`,
}

// Patterns is a compiled, case-insensitive exclusion set.
type Patterns struct {
	exprs []*regexp.Regexp
}

// Compile compiles patterns for case-insensitive search.
// The first malformed pattern fails the whole set.
func Compile(patterns []string) (*Patterns, error) {
	p := &Patterns{exprs: make([]*regexp.Regexp, 0, len(patterns))}
	for _, raw := range patterns {
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, raw, err)
		}
		p.exprs = append(p.exprs, re)
	}
	return p, nil
}

// Len reports how many patterns are in the set.
func (p *Patterns) Len() int {
	if p == nil {
		return 0
	}
	return len(p.exprs)
}

// Excludes reports whether message matches any pattern.
func (p *Patterns) Excludes(message string) bool {
	if p == nil {
		return false
	}
	for _, re := range p.exprs {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// Apply returns the commits not excluded, in their original order.
func (p *Patterns) Apply(commits []gitlog.Commit) []gitlog.Commit {
	kept := make([]gitlog.Commit, 0, len(commits))
	for _, c := range commits {
		if !p.Excludes(c.Message) {
			kept = append(kept, c)
		}
	}
	return kept
}
