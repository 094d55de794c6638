package api

import (
	"html/template"
	"net/http"

	"github.com/lrocha/leetboard/internal/db"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/services"
)

type Server struct {
	DB            *db.DB
	StatsService  services.StatsService
	RosterService services.RosterService
	Templates     *template.Template
	StaticDir     string
	MaxBatchSize  int
}

type pageData map[string]any

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	// Saved rosters feed the quick-run dropdown; the page still works
	// without them.
	rosters, _, err := s.RosterService.ListRosters(r.Context(), models.RosterFilter{Limit: 20})
	if err != nil {
		log.Warn("failed to list rosters for home page: %v", err)
		rosters = nil
	}

	s.render(w, r, "pages/home.html", pageData{
		"rosters": rosters,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["max_batch"]; !ok {
		data["max_batch"] = s.MaxBatchSize
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
