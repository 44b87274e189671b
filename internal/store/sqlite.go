package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements ChangelogStore using SQLite for persistence.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path.
// Use ":memory:" for an in-process database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		// Ensure directory exists
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// each new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS changelogs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		raw_commits TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT,
		is_published INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_changelogs_created_at ON changelogs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Publish inserts c as a published changelog.
func (s *SQLiteStore) Publish(ctx context.Context, c Changelog) (*Changelog, error) {
	now := s.now()
	c.CreatedAt = now
	c.PublishedAt = &now
	c.IsPublished = true
	if c.RawCommits == "" {
		c.RawCommits = "[]"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM changelogs WHERE version = ?`, c.Version).Scan(&existing)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrVersionExists, c.Version)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("query version: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO changelogs (version, title, content, raw_commits, created_at, published_at, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.Version, c.Title, c.Content, c.RawCommits,
		c.CreatedAt.Format(timeLayout), c.PublishedAt.Format(timeLayout), c.IsPublished)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrVersionExists, c.Version)
		}
		return nil, fmt.Errorf("insert changelog %s: %w", c.Version, err)
	}

	c.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read changelog id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit changelog %s: %w", c.Version, err)
	}
	return &c, nil
}

// List returns changelogs ordered by creation time, newest first.
func (s *SQLiteStore) List(ctx context.Context, publishedOnly bool) ([]Changelog, error) {
	query := `SELECT id, version, title, content, raw_commits, created_at, published_at, is_published FROM changelogs`
	var args []any
	if publishedOnly {
		query += ` WHERE is_published = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query changelogs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	changelogs := []Changelog{}
	for rows.Next() {
		c, err := scanChangelog(rows)
		if err != nil {
			return nil, err
		}
		changelogs = append(changelogs, *c)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("list changelogs: %w", err)
	}
	return changelogs, nil
}

// GetByVersion returns the published changelog for version.
func (s *SQLiteStore) GetByVersion(ctx context.Context, version string) (*Changelog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, version, title, content, raw_commits, created_at, published_at, is_published
		FROM changelogs WHERE version = ? AND is_published = ?
	`, version, true)

	c, err := scanChangelog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, version)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChangelog(r rowScanner) (*Changelog, error) {
	var c Changelog
	var createdAt string
	var publishedAt sql.NullString

	err := r.Scan(&c.ID, &c.Version, &c.Title, &c.Content, &c.RawCommits, &createdAt, &publishedAt, &c.IsPublished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan changelog: %w", err)
	}

	c.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", c.Version, err)
	}
	if publishedAt.Valid {
		t, err := time.Parse(timeLayout, publishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse published_at of %s: %w", c.Version, err)
		}
		c.PublishedAt = &t
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
