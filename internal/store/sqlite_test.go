package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPublish(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	got, err := s.Publish(ctx, Changelog{
		Version:    "v1.0.0",
		Title:      "Changes - May 01, 2024",
		Content:    "## 🚀 New Features\n- export",
		RawCommits: `[{"hash":"abcd1234"}]`,
	})
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.True(t, got.IsPublished)
	require.NotNil(t, got.PublishedAt)
	assert.False(t, got.CreatedAt.IsZero())

	fetched, err := s.GetByVersion(ctx, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, got.ID, fetched.ID)
	assert.Equal(t, "Changes - May 01, 2024", fetched.Title)
	assert.Equal(t, "## 🚀 New Features\n- export", fetched.Content)
	assert.Equal(t, `[{"hash":"abcd1234"}]`, fetched.RawCommits)
	assert.True(t, fetched.IsPublished)
	require.NotNil(t, fetched.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(*fetched.PublishedAt))
}

func TestPublish_DuplicateVersion(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Publish(ctx, Changelog{Version: "v1.0.0", Title: "a", Content: "a"})
	require.NoError(t, err)

	_, err = s.Publish(ctx, Changelog{Version: "v1.0.0", Title: "b", Content: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionExists)

	fetched, err := s.GetByVersion(ctx, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "a", fetched.Title)
}

func TestPublish_DefaultsRawCommits(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.Publish(context.Background(), Changelog{Version: "v2", Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "[]", got.RawCommits)
}

func TestGetByVersion_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetByVersion(context.Background(), "v9.9.9")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []string{"v1", "v2", "v3"} {
		at := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return at }
		_, err := s.Publish(ctx, Changelog{Version: v, Title: v, Content: v})
		require.NoError(t, err)
	}

	list, err := s.List(ctx, true)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, "v3", list[0].Version)
	assert.Equal(t, "v2", list[1].Version)
	assert.Equal(t, "v1", list[2].Version)
}

func TestList_PublishedOnlyFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Publish(ctx, Changelog{Version: "v1", Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO changelogs (version, title, content, raw_commits, created_at, is_published)
		VALUES ('draft', 't', 'c', '[]', ?, 0)`, time.Now().UTC().Format(timeLayout))
	require.NoError(t, err)

	published, err := s.List(ctx, true)
	require.NoError(t, err)
	all, err := s.List(ctx, false)
	require.NoError(t, err)

	assert.Len(t, published, 1)
	assert.Len(t, all, 2)

	_, err = s.GetByVersion(ctx, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_CorruptTimestamp(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO changelogs (version, title, content, raw_commits, created_at, is_published)
		VALUES ('v1', 't', 'c', '[]', 'yesterday', 1)`)
	require.NoError(t, err)

	_, err = s.List(ctx, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse created_at of v1")

	_, err = s.GetByVersion(ctx, "v1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestList_Empty(t *testing.T) {
	s := setupTestStore(t)

	list, err := s.List(context.Background(), true)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestNewSQLiteStore_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "changelog.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.Publish(context.Background(), Changelog{Version: "v1", Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetByVersion(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}
