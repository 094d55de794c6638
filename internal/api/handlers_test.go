package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/lrocha/leetboard/internal/errors"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testTemplates stands in for the real pages so assertions can key off the
// data the handlers pass in rather than markup.
func testTemplates(t *testing.T) *template.Template {
	t.Helper()
	tpl := template.New("base")
	template.Must(tpl.New("pages/home.html").Parse(
		`home rosters={{len .rosters}} max={{.max_batch}}{{with .error}} error={{.}}{{end}}`))
	template.Must(tpl.New("pages/results.html").Parse(
		`results total={{.total}} failed={{.failed}}{{with .roster}} roster={{.Name}}{{end}}{{range .rows}} {{.Index}}:{{.Username}}:{{.Rank}}{{end}}`))
	template.Must(tpl.New("pages/rosters.html").Parse(
		`rosters total={{.total}} page={{.page}}/{{.total_pages}}{{with .error}} error={{.}}{{end}}`))
	return tpl
}

func newTestServer(t *testing.T, stats *mocks.MockStatsService, rosterSvc *mocks.MockRosterService) *Server {
	t.Helper()
	return &Server{
		StatsService:  stats,
		RosterService: rosterSvc,
		Templates:     testTemplates(t),
		MaxBatchSize:  200,
	}
}

func intPtr(i int) *int { return &i }

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHome(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, models.RosterFilter{Limit: 20}).
		Return([]models.Roster{{ID: 1, Name: "team-a"}, {ID: 2, Name: "team-b"}}, 2, nil)

	srv := newTestServer(t, stats, rosterSvc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rosters=2")
	assert.Contains(t, rec.Body.String(), "max=200")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	rosterSvc.AssertExpectations(t)
}

func TestHandleHome_RosterListFailureStillRenders(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, mock.Anything).
		Return(nil, 0, assert.AnError)

	srv := newTestServer(t, stats, rosterSvc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rosters=0")
}

func TestHandleFetch_Textarea(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)

	records := []models.ProfileRecord{
		models.SuccessRecord("alice", "Alice", "", intPtr(100), 50, nil),
		models.FailureRecord("ghost", "User not found."),
	}
	stats.On("FetchAll", mock.Anything, []string{"alice", "ghost"}).Return(records)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/fetch", url.Values{"usernames": {"alice\nghost\n"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "total=2")
	assert.Contains(t, body, "failed=1")
	assert.Contains(t, body, "1:alice:100")
	assert.Contains(t, body, "2:ghost:Error")
	stats.AssertExpectations(t)
}

func TestHandleFetch_CommaSeparated(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	stats.On("FetchAll", mock.Anything, []string{"alice", "bob"}).
		Return([]models.ProfileRecord{
			models.SuccessRecord("alice", "", "", intPtr(1), 10, nil),
			models.SuccessRecord("bob", "", "", intPtr(2), 20, nil),
		})

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/fetch", url.Values{"usernames": {"alice, bob"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	stats.AssertExpectations(t)
}

func TestHandleFetch_FileUploadWinsOverTextarea(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	stats.On("FetchAll", mock.Anything, []string{"carol", "dave"}).
		Return([]models.ProfileRecord{
			models.SuccessRecord("carol", "", "", intPtr(3), 30, nil),
			models.SuccessRecord("dave", "", "", intPtr(4), 40, nil),
		})

	srv := newTestServer(t, stats, rosterSvc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("usernames_file", "users.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("carol\ndave\n"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("usernames", "ignored"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/fetch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	stats.AssertExpectations(t)
}

func TestHandleFetch_RosterSelect(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("GetRoster", mock.Anything, int64(7)).
		Return(&models.Roster{ID: 7, Name: "weekly", Usernames: []string{"erin"}}, nil)
	stats.On("FetchAll", mock.Anything, []string{"erin"}).
		Return([]models.ProfileRecord{models.SuccessRecord("erin", "", "", nil, 5, nil)})

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/fetch", url.Values{"roster_id": {"7"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	stats.AssertExpectations(t)
	rosterSvc.AssertExpectations(t)
}

func TestHandleFetch_RosterGone(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("GetRoster", mock.Anything, int64(7)).
		Return(nil, errors.NewNotFoundError("roster", int64(7)))
	rosterSvc.On("ListRosters", mock.Anything, mock.Anything).Return(nil, 0, nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/fetch", url.Values{"roster_id": {"7"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error=roster not found: 7")
	stats.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
}

func TestHandleFetch_EmptyInput(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, mock.Anything).Return(nil, 0, nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/fetch", url.Values{"usernames": {"  \n \n"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error=no usernames found in input")
	stats.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
}

func TestHandleFetch_CapExceeded(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, mock.Anything).Return(nil, 0, nil)

	srv := newTestServer(t, stats, rosterSvc)
	srv.MaxBatchSize = 2

	rec := postForm(srv.Routes(), "/fetch", url.Values{"usernames": {"a\nb\nc"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error=the number of usernames cannot exceed 2")
	stats.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
}

func TestHandleRunRoster(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("GetRoster", mock.Anything, int64(5)).
		Return(&models.Roster{ID: 5, Name: "interview-prep", Usernames: []string{"alice", "bob"}}, nil)
	stats.On("FetchAll", mock.Anything, []string{"alice", "bob"}).
		Return([]models.ProfileRecord{
			models.SuccessRecord("alice", "", "", intPtr(1), 10, nil),
			models.FailureRecord("bob", "API error: 500"),
		})

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/5/run", url.Values{})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "roster=interview-prep")
	assert.Contains(t, body, "failed=1")
	stats.AssertExpectations(t)
	rosterSvc.AssertExpectations(t)
}

func TestHandleRunRoster_NotFound(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("GetRoster", mock.Anything, int64(99)).
		Return(nil, errors.NewNotFoundError("roster", int64(99)))

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/99/run", url.Values{})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	stats.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
}

func TestHandleRunRoster_InvalidID(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/abc/run", url.Values{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRosters_Pagination(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, models.RosterFilter{
		NameContains: "week",
		Limit:        rostersPerPage,
		Offset:       rostersPerPage,
	}).Return([]models.Roster{{ID: 21, Name: "weekly-21"}}, 21, nil)

	srv := newTestServer(t, stats, rosterSvc)

	req := httptest.NewRequest(http.MethodGet, "/rosters?q=week&page=2", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "total=21")
	assert.Contains(t, rec.Body.String(), "page=2/2")
	rosterSvc.AssertExpectations(t)
}

func TestHandleCreateRoster(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("CreateRoster", mock.Anything, "weekly", []string{"alice", "bob"}).
		Return(&models.Roster{ID: 1, Name: "weekly", Usernames: []string{"alice", "bob"}}, nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters", url.Values{
		"name":      {"weekly"},
		"usernames": {"alice\nbob"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/rosters", rec.Header().Get("Location"))
	rosterSvc.AssertExpectations(t)
}

func TestHandleCreateRoster_EmptyMembers(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("ListRosters", mock.Anything, mock.Anything).Return(nil, 0, nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters", url.Values{
		"name":      {"weekly"},
		"usernames": {""},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error=no usernames found in input")
	rosterSvc.AssertNotCalled(t, "CreateRoster", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCreateRoster_DuplicateName(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("CreateRoster", mock.Anything, "weekly", []string{"alice"}).
		Return(nil, errors.NewValidationError("name", "already taken"))

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters", url.Values{
		"name":      {"weekly"},
		"usernames": {"alice"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestHandleUpdateRoster(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("UpdateRoster", mock.Anything, int64(3), "renamed", []string{"carol"}).
		Return(&models.Roster{ID: 3, Name: "renamed", Usernames: []string{"carol"}}, nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/3", url.Values{
		"name":      {"renamed"},
		"usernames": {"carol"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	rosterSvc.AssertExpectations(t)
}

func TestHandleDeleteRoster(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("DeleteRoster", mock.Anything, int64(4)).Return(nil)

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/4/delete", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/rosters", rec.Header().Get("Location"))
	rosterSvc.AssertExpectations(t)
}

func TestHandleDeleteRoster_NotFound(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("DeleteRoster", mock.Anything, int64(4)).
		Return(errors.NewNotFoundError("roster", int64(4)))

	srv := newTestServer(t, stats, rosterSvc)

	rec := postForm(srv.Routes(), "/rosters/4/delete", url.Values{})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError_JSONAccept(t *testing.T) {
	stats := new(mocks.MockStatsService)
	rosterSvc := new(mocks.MockRosterService)
	rosterSvc.On("GetRoster", mock.Anything, int64(9)).
		Return(nil, errors.NewNotFoundError("roster", int64(9)))

	srv := newTestServer(t, stats, rosterSvc)

	req := httptest.NewRequest(http.MethodPost, "/rosters/9/run", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "NOT_FOUND", payload["error"]["code"])
	assert.Equal(t, "roster not found: 9", payload["error"]["message"])
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, new(mocks.MockStatsService), new(mocks.MockRosterService))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandleReady_NoDatabase(t *testing.T) {
	srv := newTestServer(t, new(mocks.MockStatsService), new(mocks.MockRosterService))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ready", rec.Body.String())
}
