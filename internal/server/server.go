// Package server exposes changelog generation and publishing over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/josephgoksu/Chronicler/internal/filter"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/store"
)

// Generator produces changelogs from repository history.
type Generator interface {
	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	Strategy() string
}

// Config holds the HTTP server settings.
type Config struct {
	Port            int
	AllowedOrigins  []string
	LookbackDays    *int // nil means gitlog.DefaultLookbackDays; zero is a valid window
	ExcludePatterns []string
}

type Server struct {
	generator Generator
	store     store.ChangelogStore
	validate  *validator.Validate
	origins   map[string]struct{}
	cfg       Config
	days      int
	now       func() time.Time
	server    *http.Server
}

// New creates a Server. The store is owned by the server and closed when it stops.
func New(cfg Config, generator Generator, st store.ChangelogStore) *Server {
	days := gitlog.DefaultLookbackDays
	if cfg.LookbackDays != nil {
		days = *cfg.LookbackDays
	}
	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = filter.DefaultPatterns
	}

	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = struct{}{}
	}

	s := &Server{
		generator: generator,
		store:     st,
		validate:  newValidator(),
		origins:   origins,
		cfg:       cfg,
		days:      days,
		now:       time.Now,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { _ = s.store.Close() }()

		slog.Info("api server listening", "addr", s.server.Addr, "strategy", s.generator.Strategy())
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
