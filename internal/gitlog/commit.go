// Package gitlog reads commit history from a local Git repository using go-git.
// It never writes to the repository.
package gitlog

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the commit source.
var (
	ErrInvalidRepository = errors.New("invalid git repository path")
	ErrUnknownRevision   = errors.New("unknown git revision")
	ErrInvalidWindow     = errors.New("invalid selection window")
)

// ShortHashLen is the number of hex characters kept from a commit hash.
const ShortHashLen = 8

// DefaultLookbackDays is the day window used when no range is given.
const DefaultLookbackDays = 7

// Commit is a single commit as seen by the changelog pipeline.
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Files   []string  `json:"files"`
}

// Window selects which commits to read. It is either SinceDays or Range.
type Window interface {
	isWindow()
	String() string
}

// SinceDays selects commits committed on or after midnight today minus Days.
type SinceDays struct {
	Days int
}

func (SinceDays) isWindow() {}

func (w SinceDays) String() string {
	return fmt.Sprintf("last %d days", w.Days)
}

// Range selects commits reachable from To and not from From (git's From..To).
type Range struct {
	From string
	To   string
}

func (Range) isWindow() {}

func (w Range) String() string {
	return w.From + ".." + w.To
}

// NewWindow builds a Window from request-style parameters.
// Both endpoints must be set for a Range; a Range takes precedence over days.
func NewWindow(days int, from, to string) (Window, error) {
	if from != "" && to != "" {
		return Range{From: from, To: to}, nil
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidWindow, days)
	}
	return SinceDays{Days: days}, nil
}
