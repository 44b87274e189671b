package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/publish", s.handlePublish)
	mux.HandleFunc("GET /api/changelog", s.handleListChangelogs)
	mux.HandleFunc("GET /api/changelog/{version}", s.handleGetChangelog)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.requestLogMiddleware(s.corsMiddleware(mux))
}
