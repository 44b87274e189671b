// Package store persists published changelogs in SQLite.
package store

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by the store.
var (
	ErrVersionExists = errors.New("version already exists")
	ErrNotFound      = errors.New("changelog not found")
)

// Changelog is a stored changelog keyed by its unique version.
type Changelog struct {
	ID          int64      `json:"id"`
	Version     string     `json:"version"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	RawCommits  string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
	IsPublished bool       `json:"is_published"`
}

// ChangelogStore defines persistence for published changelogs.
type ChangelogStore interface {
	// Publish stores c as published. It fails with ErrVersionExists when the
	// version is already taken.
	Publish(ctx context.Context, c Changelog) (*Changelog, error)

	// List returns changelogs, newest first, optionally only published ones.
	List(ctx context.Context, publishedOnly bool) ([]Changelog, error)

	// GetByVersion returns the published changelog for version or ErrNotFound.
	GetByVersion(ctx context.Context, version string) (*Changelog, error)

	Close() error
}
