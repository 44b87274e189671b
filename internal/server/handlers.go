package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/josephgoksu/Chronicler/internal/changelog"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/store"
)

// handleGenerate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return
	}

	days := s.days
	if req.Days != nil {
		days = *req.Days
	}
	window, err := gitlog.NewWindow(days, req.FromCommit, req.ToCommit)
	if err != nil {
		writeError(w, err)
		return
	}

	repoPath := req.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	patterns := req.ExcludePatterns
	if patterns == nil {
		patterns = s.cfg.ExcludePatterns
	}

	res, err := s.generator.Generate(r.Context(), pipeline.Request{
		RepoPath:        repoPath,
		Window:          window,
		ExcludePatterns: patterns,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeAPIJSON(w, res)
}

// handlePublish
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, CodeInvalidRequest, validationDetail(err))
		return
	}

	commits := req.RawCommits
	if commits == nil {
		commits = []gitlog.Commit{}
	}
	raw, err := json.Marshal(commits)
	if err != nil {
		writeError(w, fmt.Errorf("encode commits: %w", err))
		return
	}

	saved, err := s.store.Publish(r.Context(), store.Changelog{
		Version:    req.Version,
		Title:      req.Title,
		Content:    req.Content,
		RawCommits: string(raw),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeAPIJSONStatus(w, http.StatusCreated, saved)
}

// handleListChangelogs
func (s *Server) handleListChangelogs(w http.ResponseWriter, r *http.Request) {
	publishedOnly := true
	if v := r.URL.Query().Get("published_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeErrorCode(w, http.StatusBadRequest, CodeInvalidRequest, "published_only must be a boolean")
			return
		}
		publishedOnly = b
	}

	list, err := s.store.List(r.Context(), publishedOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAPIJSON(w, list)
}

// handleGetChangelog
func (s *Server) handleGetChangelog(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	if version == "" {
		writeErrorCode(w, http.StatusBadRequest, CodeInvalidRequest, "missing version")
		return
	}

	c, err := s.store.GetByVersion(r.Context(), version)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAPIJSON(w, c)
}

// handleHealth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	strategy := s.generator.Strategy()
	writeAPIJSON(w, HealthResponse{
		Status:       "healthy",
		Timestamp:    s.now().UTC(),
		AIConfigured: strategy == changelog.StrategyAI,
		Strategy:     strategy,
	})
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s is %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}
