package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lrocha/leetboard/internal/errors"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/report"
	"github.com/lrocha/leetboard/internal/roster"
)

// maxUploadBytes bounds the in-memory size of an uploaded usernames file.
// A username per line stays far below this even at the batch cap.
const maxUploadBytes = 1 << 20

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	usernames, err := s.usernamesFromRequest(r)
	if err != nil {
		log.Warn("rejecting fetch request: %v", err)
		s.renderHomeError(w, r, err)
		return
	}

	log.Info("fetching stats for %d users", len(usernames))
	records := s.StatsService.FetchAll(r.Context(), usernames)

	s.render(w, r, "pages/results.html", pageData{
		"rows":   report.Rows(records),
		"total":  len(records),
		"failed": countFailed(records),
	})
}

func (s *Server) handleRunRoster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Warn("invalid roster id: %s", idStr)
		http.Error(w, "invalid roster id", http.StatusBadRequest)
		return
	}

	ros, err := s.RosterService.GetRoster(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	log.Info("fetching stats for roster %q (%d users)", ros.Name, len(ros.Usernames))
	records := s.StatsService.FetchAll(r.Context(), ros.Usernames)

	s.render(w, r, "pages/results.html", pageData{
		"rows":   report.Rows(records),
		"total":  len(records),
		"failed": countFailed(records),
		"roster": ros,
	})
}

// usernamesFromRequest resolves the batch from the fetch form. An uploaded
// file wins over a selected roster, which wins over the textarea. Parse
// failures come back as input errors; roster lookups keep their own codes.
func (s *Server) usernamesFromRequest(r *http.Request) ([]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, errors.NewInputError(err.Error())
		}
		file, _, err := r.FormFile("usernames_file")
		if err == nil {
			defer file.Close()
			return inputOrError(roster.Parse(file, s.MaxBatchSize))
		}
		if err != http.ErrMissingFile {
			return nil, errors.NewInputError(err.Error())
		}
	}

	if idStr := r.FormValue("roster_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, errors.NewInputError("invalid roster id")
		}
		ros, err := s.RosterService.GetRoster(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return ros.Usernames, nil
	}

	// The textarea takes one username per line but commas work too.
	text := strings.ReplaceAll(r.FormValue("usernames"), ",", "\n")
	return inputOrError(roster.Parse(strings.NewReader(text), s.MaxBatchSize))
}

func inputOrError(usernames []string, err error) ([]string, error) {
	if err != nil {
		return nil, errors.NewInputError(err.Error())
	}
	return usernames, nil
}

// renderHomeError re-renders the home page with the rejection message, keeping
// the roster dropdown populated so the user can retry without navigating.
func (s *Server) renderHomeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewInputError(err.Error())
	}

	rosters, _, listErr := s.RosterService.ListRosters(r.Context(), models.RosterFilter{Limit: 20})
	if listErr != nil {
		rosters = nil
	}

	w.WriteHeader(appErr.Status)
	s.render(w, r, "pages/home.html", pageData{
		"rosters": rosters,
		"error":   appErr.Message,
	})
}

func countFailed(records []models.ProfileRecord) int {
	var n int
	for _, rec := range records {
		if rec.Failed() {
			n++
		}
	}
	return n
}
