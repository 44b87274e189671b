package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/store"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{gitlog.ErrInvalidRepository, http.StatusBadRequest, CodeInvalidRepository},
	{gitlog.ErrUnknownRevision, http.StatusBadRequest, CodeUnknownRevision},
	{gitlog.ErrInvalidWindow, http.StatusBadRequest, CodeInvalidWindow},
	{filter.ErrInvalidPattern, http.StatusBadRequest, CodeInvalidPattern},
	{pipeline.ErrNoCommitsFound, http.StatusNotFound, CodeNoCommitsFound},
	{pipeline.ErrNoRelevantCommits, http.StatusNotFound, CodeNoRelevantCommits},
	{store.ErrVersionExists, http.StatusBadRequest, CodeVersionExists},
	{store.ErrNotFound, http.StatusNotFound, CodeNotFound},
}

// classify maps a domain error to an HTTP status and error code.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		detail = pipeline.ErrInternal.Error()
	}
	writeErrorCode(w, status, code, detail)
}

func writeErrorCode(w http.ResponseWriter, status int, code, detail string) {
	writeAPIJSONStatus(w, status, ErrorResponse{Error: code, Detail: detail})
}

func writeAPIJSON(w http.ResponseWriter, data any) {
	writeAPIJSONStatus(w, http.StatusOK, data)
}

func writeAPIJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
