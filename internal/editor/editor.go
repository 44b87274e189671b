// Package editor converts changelogs to and from "# Title" markdown documents
// and lets the user revise them in an external editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// ErrNoEditor is returned when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// Document is a changelog as the user sees it in a file.
type Document struct {
	Title   string
	Content string
}

// Format renders d as "# Title", a blank line and the content.
func Format(d Document) string {
	return fmt.Sprintf("# %s\n\n%s\n", d.Title, strings.TrimSpace(d.Content))
}

// Parse reads a document. A leading "# " line becomes the title; otherwise
// fallbackTitle is used and the whole text is the content.
func Parse(text, fallbackTitle string) Document {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	first, rest, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimRight(first, "\r")

	if strings.HasPrefix(first, "# ") {
		return Document{
			Title:   strings.TrimSpace(strings.TrimPrefix(first, "# ")),
			Content: strings.TrimSpace(rest),
		}
	}
	return Document{Title: fallbackTitle, Content: strings.TrimSpace(text)}
}

// Save writes d to path.
func Save(fs afero.Fs, path string, d Document) error {
	if err := afero.WriteFile(fs, path, []byte(Format(d)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a document from path.
func Load(fs afero.Fs, path, fallbackTitle string) (Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data), fallbackTitle), nil
}

// SaveTemp writes d to a new temporary markdown file and returns its path.
func SaveTemp(fs afero.Fs, d Document) (string, error) {
	f, err := afero.TempFile(fs, "", "changelog-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(Format(d)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Edit opens d in editorCmd and returns the revised document.
// editorCmd may carry arguments, e.g. "code --wait".
func Edit(ctx context.Context, editorCmd string, d Document) (Document, error) {
	args := strings.Fields(editorCmd)
	if len(args) == 0 {
		return Document{}, ErrNoEditor
	}

	fs := afero.NewOsFs()
	path, err := SaveTemp(fs, d)
	if err != nil {
		return Document{}, err
	}
	defer func() { _ = fs.Remove(path) }()

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return Document{}, fmt.Errorf("run editor %q: %w", args[0], err)
	}

	return Load(fs, path, d.Title)
}
