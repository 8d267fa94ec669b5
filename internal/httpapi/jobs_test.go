package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

type stubSearcher struct {
	lastReq model.SearchRequest
	result  *model.SearchResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, req model.SearchRequest) (*model.SearchResult, error) {
	s.lastReq = req
	if s.result == nil {
		return &model.SearchResult{Jobs: []model.Job{}}, s.err
	}
	return s.result, s.err
}

func newTestRouter(s *stubSearcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(s, nil, nil))
}

func doSearch(t *testing.T, r *gin.Engine, target string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)

	var body searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSearchJobs_ParamsForwarded(t *testing.T) {
	s := &stubSearcher{}
	r := newTestRouter(s)

	w, _ := doSearch(t, r, "/api/jobs?q=go&company=acme&type=Contract&workMode=remote&region=europe&city=Berlin&datePosted=7&page=3&perPage=50")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, model.SearchRequest{
		Query:      "go",
		Company:    "acme",
		Type:       "Contract",
		WorkMode:   "remote",
		Region:     "europe",
		City:       "Berlin",
		DatePosted: "7",
		Page:       3,
		PerPage:    50,
	}, s.lastReq)
}

func TestSearchJobs_PerPageClamped(t *testing.T) {
	cases := map[string]int{
		"10":  10,
		"25":  25,
		"50":  50,
		"100": 100,
		"30":  25, // outside the allowed set
		"0":   25,
		"-5":  25,
		"abc": 25,
		"":    25,
	}
	for raw, want := range cases {
		s := &stubSearcher{}
		r := newTestRouter(s)
		doSearch(t, r, "/api/jobs?region=us&perPage="+raw)
		assert.Equal(t, want, s.lastReq.PerPage, "perPage=%q", raw)
	}
}

func TestSearchJobs_PageFloorsAtOne(t *testing.T) {
	s := &stubSearcher{}
	r := newTestRouter(s)
	doSearch(t, r, "/api/jobs?region=us&page=-2")
	assert.Equal(t, 1, s.lastReq.Page)
}

func TestSearchJobs_NoScopeMessage(t *testing.T) {
	s := &stubSearcher{}
	r := newTestRouter(s)

	w, body := doSearch(t, r, "/api/jobs?q=go")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "select a region or country to search", body.Message)
	assert.Empty(t, body.Jobs)
}

func TestSearchJobs_ScopedRequestHasNoMessage(t *testing.T) {
	s := &stubSearcher{}
	r := newTestRouter(s)

	_, body := doSearch(t, r, "/api/jobs?country=de")
	assert.Empty(t, body.Message)
}

func TestSearchJobs_WorkModeAnnotation(t *testing.T) {
	s := &stubSearcher{result: &model.SearchResult{
		Jobs: []model.Job{
			{ID: "1", Title: "Engineer", Description: "fully remote role", PostedAt: time.Now()},
			{ID: "2", Title: "Engineer", Description: "office-based position", PostedAt: time.Now()},
			{ID: "3", Title: "Engineer", Description: "build services", PostedAt: time.Now()},
		},
		TotalJobs:  3,
		TotalPages: 1,
	}}
	r := newTestRouter(s)

	_, body := doSearch(t, r, "/api/jobs?country=gb")
	require.Len(t, body.Jobs, 3)
	assert.Equal(t, "remote", body.Jobs[0].WorkMode)
	assert.Equal(t, "onsite", body.Jobs[1].WorkMode)
	assert.Empty(t, body.Jobs[2].WorkMode)
}

func TestSearchJobs_UpstreamErrorSurfaced(t *testing.T) {
	s := &stubSearcher{result: &model.SearchResult{
		Jobs:     []model.Job{},
		APIError: "upstream down",
	}}
	r := newTestRouter(s)

	w, body := doSearch(t, r, "/api/jobs?region=us")
	assert.Equal(t, http.StatusOK, w.Code, "degraded upstream is not an HTTP failure")
	assert.Equal(t, "upstream down", body.APIError)
}

func TestSearchJobs_CorrectionPassedThrough(t *testing.T) {
	s := &stubSearcher{result: &model.SearchResult{
		Jobs: []model.Job{},
		CorrectionApplied: &model.Correction{
			OriginalRegion:   "us",
			CorrectedRegion:  "europe",
			CorrectedCountry: "es",
			City:             "Madrid",
		},
	}}
	r := newTestRouter(s)

	_, body := doSearch(t, r, "/api/jobs?region=us&city=Madrid")
	require.NotNil(t, body.CorrectionApplied)
	assert.Equal(t, "es", body.CorrectionApplied.CorrectedCountry)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubSearcher{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestApplications_MissingUserHeader(t *testing.T) {
	r := newTestRouter(&stubSearcher{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/applications", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
