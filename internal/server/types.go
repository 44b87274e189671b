package server

import (
	"time"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
)

// GenerateRequest is the payload for /api/generate.
// A nil ExcludePatterns selects the configured defaults; an empty list disables filtering.
type GenerateRequest struct {
	RepoPath        string   `json:"repo_path"`
	Days            *int     `json:"days"`
	FromCommit      string   `json:"from_commit"`
	ToCommit        string   `json:"to_commit"`
	ExcludePatterns []string `json:"exclude_patterns"`
}

// PublishRequest is the payload for /api/publish.
type PublishRequest struct {
	Version    string          `json:"version" validate:"required"`
	Title      string          `json:"title" validate:"required"`
	Content    string          `json:"content" validate:"required"`
	RawCommits []gitlog.Commit `json:"raw_commits"`
}

// HealthResponse is the response for /api/health.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	AIConfigured bool      `json:"ai_configured"`
	Strategy     string    `json:"strategy"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Error codes returned in ErrorResponse.Error.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidRepository = "invalid_repository"
	CodeUnknownRevision   = "unknown_revision"
	CodeInvalidWindow     = "invalid_window"
	CodeInvalidPattern    = "invalid_pattern"
	CodeNoCommitsFound    = "no_commits_found"
	CodeNoRelevantCommits = "no_relevant_commits"
	CodeVersionExists     = "version_exists"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal_error"
)
