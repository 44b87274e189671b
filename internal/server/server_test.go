package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Chronicler/internal/changelog"
	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/store"
)

type stubGenerator struct {
	strategy string
	result   *pipeline.Result
	err      error
	got      pipeline.Request
}

func (g *stubGenerator) Generate(_ context.Context, req pipeline.Request) (*pipeline.Result, error) {
	g.got = req
	return g.result, g.err
}

func (g *stubGenerator) Strategy() string {
	return g.strategy
}

func setupTestServer(t *testing.T, gen *stubGenerator) *Server {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return New(Config{AllowedOrigins: []string{"http://localhost:3000"}}, gen, st)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHandleGenerate_ZeroLookbackDays(t *testing.T) {
	gen := &stubGenerator{strategy: changelog.StrategySimple, result: &pipeline.Result{}}
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	zero := 0
	s := New(Config{LookbackDays: &zero}, gen, st)

	rec := do(t, s, http.MethodPost, "/api/generate", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gitlog.SinceDays{Days: 0}, gen.got.Window)
}

func TestHandleGenerate_Defaults(t *testing.T) {
	gen := &stubGenerator{
		strategy: changelog.StrategySimple,
		result:   &pipeline.Result{Title: "Changes - April 03, 2024", Content: "## 🐛 Bug Fixes\n- fix: x"},
	}
	s := setupTestServer(t, gen)

	rec := do(t, s, http.MethodPost, "/api/generate", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", gen.got.RepoPath)
	assert.Equal(t, gitlog.SinceDays{Days: gitlog.DefaultLookbackDays}, gen.got.Window)
	assert.Equal(t, filter.DefaultPatterns, gen.got.ExcludePatterns)

	var res pipeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Changes - April 03, 2024", res.Title)
	assert.Equal(t, "## 🐛 Bug Fixes\n- fix: x", res.Content)
}

func TestHandleGenerate_RangeAndExplicitPatterns(t *testing.T) {
	gen := &stubGenerator{result: &pipeline.Result{}}
	s := setupTestServer(t, gen)

	rec := do(t, s, http.MethodPost, "/api/generate",
		`{"repo_path":"/src/app","days":3,"from_commit":"v1.0.0","to_commit":"HEAD","exclude_patterns":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/src/app", gen.got.RepoPath)
	assert.Equal(t, gitlog.Range{From: "v1.0.0", To: "HEAD"}, gen.got.Window)
	assert.NotNil(t, gen.got.ExcludePatterns)
	assert.Empty(t, gen.got.ExcludePatterns)
}

func TestHandleGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid repository", gitlog.ErrInvalidRepository, http.StatusBadRequest, CodeInvalidRepository},
		{"unknown revision", gitlog.ErrUnknownRevision, http.StatusBadRequest, CodeUnknownRevision},
		{"invalid pattern", filter.ErrInvalidPattern, http.StatusBadRequest, CodeInvalidPattern},
		{"no commits", pipeline.ErrNoCommitsFound, http.StatusNotFound, CodeNoCommitsFound},
		{"no relevant commits", pipeline.ErrNoRelevantCommits, http.StatusNotFound, CodeNoRelevantCommits},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t, &stubGenerator{err: tt.err})

			rec := do(t, s, http.MethodPost, "/api/generate", `{}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Error)
		})
	}
}

func TestHandleGenerate_InternalDetailHidden(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{err: errors.New("secret path /etc/shadow")})

	rec := do(t, s, http.MethodPost, "/api/generate", `{}`)

	assert.NotContains(t, decodeError(t, rec).Detail, "shadow")
}

func TestHandleGenerate_NegativeDays(t *testing.T) {
	gen := &stubGenerator{result: &pipeline.Result{}}
	s := setupTestServer(t, gen)

	rec := do(t, s, http.MethodPost, "/api/generate", `{"days":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidWindow, decodeError(t, rec).Error)
}

func TestHandleGenerate_BadJSON(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})

	rec := do(t, s, http.MethodPost, "/api/generate", `{"days":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidRequest, decodeError(t, rec).Error)
}

func TestPublishListShow(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})

	body := `{"version":"v1.2.0","title":"Release v1.2.0","content":"## 🚀 New Features\n- export",` +
		`"raw_commits":[{"hash":"abcd1234","message":"feat: export","author":"Ada","date":"2024-04-03T10:00:00Z","files":["a.go"]}]}`
	rec := do(t, s, http.MethodPost, "/api/publish", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved store.Changelog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "v1.2.0", saved.Version)
	assert.True(t, saved.IsPublished)

	rec = do(t, s, http.MethodGet, "/api/changelog?published_only=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []store.Changelog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Release v1.2.0", list[0].Title)

	rec = do(t, s, http.MethodGet, "/api/changelog/v1.2.0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Changelog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "## 🚀 New Features\n- export", got.Content)
}

func TestHandlePublish_DuplicateVersion(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})
	body := `{"version":"v1","title":"t","content":"c"}`

	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/publish", body).Code)
	rec := do(t, s, http.MethodPost, "/api/publish", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeVersionExists, decodeError(t, rec).Error)
}

func TestHandlePublish_Validation(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})

	rec := do(t, s, http.MethodPost, "/api/publish", `{"title":"t","content":"c"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, CodeInvalidRequest, e.Error)
	assert.Equal(t, "version is required", e.Detail)
}

func TestHandleGetChangelog_NotFound(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})

	rec := do(t, s, http.MethodGet, "/api/changelog/v0.0.1", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rec).Error)
}

func TestHandleListChangelogs_BadFlag(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{})

	rec := do(t, s, http.MethodGet, "/api/changelog?published_only=maybe", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{strategy: changelog.StrategyAI})
	fixed := time.Date(2024, 4, 3, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec := do(t, s, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var h HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, h.AIConfigured)
	assert.Equal(t, changelog.StrategyAI, h.Strategy)
	assert.True(t, fixed.Equal(h.Timestamp))
}

func TestCORS(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{strategy: changelog.StrategySimple})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	s := setupTestServer(t, &stubGenerator{strategy: changelog.StrategySimple})

	rec := do(t, s, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
