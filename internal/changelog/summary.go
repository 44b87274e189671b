package changelog

import (
	"sort"
	"time"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
)

// titleLayout renders dates like "January 02, 2006".
const titleLayout = "January 02, 2006"

// DateRange spans the oldest and newest surviving commit.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Summary aggregates a generation run.
type Summary struct {
	TotalCommits    int       `json:"total_commits"`
	FilteredCommits int       `json:"filtered_commits"`
	Authors         []string  `json:"authors"`
	DateRange       DateRange `json:"date_range"`
}

// Summarize counts all and filtered commits and collects the distinct
// authors and date span of filtered. Both slices are newest first.
func Summarize(all, filtered []gitlog.Commit) Summary {
	s := Summary{
		TotalCommits:    len(all),
		FilteredCommits: len(filtered),
		Authors:         []string{},
	}

	seen := make(map[string]struct{}, len(filtered))
	for _, c := range filtered {
		if _, ok := seen[c.Author]; ok {
			continue
		}
		seen[c.Author] = struct{}{}
		s.Authors = append(s.Authors, c.Author)
	}
	sort.Strings(s.Authors)

	if len(filtered) > 0 {
		to := filtered[0].Date
		from := filtered[len(filtered)-1].Date
		s.DateRange = DateRange{From: &from, To: &to}
	}
	return s
}

// Title names a changelog after its newest commit date, or now when there
// are no commits.
func Title(commits []gitlog.Commit, now time.Time) string {
	date := now
	if len(commits) > 0 {
		date = commits[0].Date
	}
	return "Changes - " + date.Format(titleLayout)
}
