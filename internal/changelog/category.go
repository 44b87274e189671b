package changelog

import "strings"

// Category is one of the fixed changelog buckets.
type Category int

const (
	Features Category = iota
	BugFixes
	Improvements
	Other
)

// categoryOrder is both the classification order and the render order.
var categoryOrder = []Category{Features, BugFixes, Improvements, Other}

var categoryKeywords = map[Category][]string{
	Features:     {"feat", "feature", "add", "new"},
	BugFixes:     {"fix", "bug", "resolve", "patch"},
	Improvements: {"improve", "enhance", "update", "optimize"},
}

var categoryHeadings = map[Category]string{
	Features:     "🚀 New Features",
	BugFixes:     "🐛 Bug Fixes",
	Improvements: "💡 Improvements",
	Other:        "📝 Other Changes",
}

// String returns the bucket heading without markdown.
func (c Category) String() string {
	if h, ok := categoryHeadings[c]; ok {
		return h
	}
	return "unknown"
}

// Classify returns the first category whose keywords appear in message.
// Matching is a case-insensitive substring search; Other catches the rest.
func Classify(message string) Category {
	lower := strings.ToLower(message)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return Other
}
