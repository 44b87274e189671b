// Package changelog turns a filtered commit list into changelog markdown.
//
// Two writers are available:
//   - an AI writer that asks a language model for a user-facing changelog
//   - a keyword writer that buckets commits into fixed categories
//
// The AI writer always falls back to the keyword writer when the model call
// fails, so Compose never returns an error. The package also builds the
// summary statistics and the title shown alongside a generated changelog.
package changelog
