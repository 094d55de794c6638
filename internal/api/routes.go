package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/", s.handleHome)
	r.Post("/fetch", s.handleFetch)
	r.Get("/rosters", s.handleRosters)
	r.Post("/rosters", s.handleCreateRoster)
	r.Post("/rosters/{id}", s.handleUpdateRoster)
	r.Post("/rosters/{id}/delete", s.handleDeleteRoster)
	r.Post("/rosters/{id}/run", s.handleRunRoster)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	staticDir := s.StaticDir
	if staticDir == "" {
		staticDir = "web/static"
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return r
}
