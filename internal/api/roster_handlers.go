package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/roster"
)

const rostersPerPage = 20

func (s *Server) handleRosters(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering rosters page")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := parsePage(r.URL.Query().Get("page"))

	rosters, total, err := s.RosterService.ListRosters(r.Context(), models.RosterFilter{
		NameContains: query,
		Limit:        rostersPerPage,
		Offset:       (page - 1) * rostersPerPage,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	totalPages := (total + rostersPerPage - 1) / rostersPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	s.render(w, r, "pages/rosters.html", pageData{
		"rosters":     rosters,
		"total":       total,
		"query":       query,
		"page":        page,
		"total_pages": totalPages,
	})
}

func (s *Server) handleCreateRoster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	usernames, err := parseRosterMembers(r.FormValue("usernames"), s.MaxBatchSize)
	if err != nil {
		log.Warn("rejecting roster create: %v", err)
		s.renderRostersError(w, r, err.Error())
		return
	}

	if _, err := s.RosterService.CreateRoster(r.Context(), name, usernames); err != nil {
		s.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/rosters", http.StatusSeeOther)
}

func (s *Server) handleUpdateRoster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := rosterID(r)
	if err != nil {
		log.Warn("invalid roster id: %s", chi.URLParam(r, "id"))
		http.Error(w, "invalid roster id", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	usernames, err := parseRosterMembers(r.FormValue("usernames"), s.MaxBatchSize)
	if err != nil {
		log.Warn("rejecting roster update: %v", err)
		s.renderRostersError(w, r, err.Error())
		return
	}

	if _, err := s.RosterService.UpdateRoster(r.Context(), id, name, usernames); err != nil {
		s.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/rosters", http.StatusSeeOther)
}

func (s *Server) handleDeleteRoster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := rosterID(r)
	if err != nil {
		log.Warn("invalid roster id: %s", chi.URLParam(r, "id"))
		http.Error(w, "invalid roster id", http.StatusBadRequest)
		return
	}

	if err := s.RosterService.DeleteRoster(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/rosters", http.StatusSeeOther)
}

func (s *Server) renderRostersError(w http.ResponseWriter, r *http.Request, msg string) {
	rosters, total, err := s.RosterService.ListRosters(r.Context(), models.RosterFilter{
		Limit: rostersPerPage,
	})
	if err != nil {
		rosters, total = nil, 0
	}

	totalPages := (total + rostersPerPage - 1) / rostersPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	w.WriteHeader(http.StatusBadRequest)
	s.render(w, r, "pages/rosters.html", pageData{
		"rosters":     rosters,
		"total":       total,
		"query":       "",
		"page":        1,
		"total_pages": totalPages,
		"error":       msg,
	})
}

func rosterID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseRosterMembers reads the roster form textarea, which takes one
// username per line or a comma-separated list.
func parseRosterMembers(text string, maxSize int) ([]string, error) {
	normalized := strings.ReplaceAll(text, ",", "\n")
	return roster.Parse(strings.NewReader(normalized), maxSize)
}
