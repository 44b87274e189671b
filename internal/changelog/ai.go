package changelog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/llm"
)

// maxPromptFiles caps the file paths listed per commit in the prompt.
const maxPromptFiles = 5

// SystemPrompt frames the model as a changelog writer.
const SystemPrompt = "You are an expert technical writer specializing in user-facing changelogs for developer tools."

const promptTemplate = `
You are an expert technical writer creating user-facing changelogs for developer tools.

Given these Git commits, create a changelog that:
1. Groups changes into logical categories (Features, Bug Fixes, Improvements, Breaking Changes)
2. Writes descriptions from the END USER perspective (not internal dev details)
3. Focuses on what users can now do differently or what problems are solved
4. Excludes purely internal changes (refactoring, testing, CI/CD)
5. Uses clear, concise language that non-technical users can understand

Format the output as clean Markdown with:
- Clear category headers with emojis
- Bullet points for each significant change
- Brief descriptions focusing on user impact

Commits to process:
%s
Generate a user-focused changelog in Markdown format:
`

// AIComposer asks a language model to write the changelog.
type AIComposer struct {
	completer   llm.Completer
	fallback    SimpleComposer
	maxTokens   int
	temperature float32
}

// Strategy reports the writer name.
func (a *AIComposer) Strategy() string {
	return StrategyAI
}

// Compose returns the model's changelog, or the keyword changelog when the
// model call fails for any reason.
func (a *AIComposer) Compose(ctx context.Context, commits []gitlog.Commit) string {
	temperature := a.temperature
	out, err := a.completer.Complete(ctx, llm.Request{
		System:      SystemPrompt,
		User:        BuildPrompt(commits),
		MaxTokens:   a.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		slog.Warn("AI changelog generation failed, using keyword fallback",
			"commits", len(commits), "error", err)
		return a.fallback.Compose(ctx, commits)
	}
	if strings.TrimSpace(out) == "" {
		slog.Warn("AI changelog was empty, using keyword fallback", "commits", len(commits))
		return a.fallback.Compose(ctx, commits)
	}

	slog.Info("generated AI changelog", "commits", len(commits))
	return strings.TrimSpace(out)
}

// BuildPrompt embeds one line per commit in the changelog instructions.
func BuildPrompt(commits []gitlog.Commit) string {
	var sb strings.Builder
	for _, c := range commits {
		sb.WriteString(CommitLine(c))
		sb.WriteString("\n")
	}
	return fmt.Sprintf(promptTemplate, sb.String())
}

// CommitLine formats a commit as "- <hash>: <message> (Files: a, b)".
// At most five files are listed; the files part is omitted when empty.
func CommitLine(c gitlog.Commit) string {
	line := fmt.Sprintf("- %s: %s", c.Hash, c.Message)
	if len(c.Files) == 0 {
		return line
	}
	files := c.Files
	if len(files) > maxPromptFiles {
		files = files[:maxPromptFiles]
	}
	return line + " (Files: " + strings.Join(files, ", ") + ")"
}
