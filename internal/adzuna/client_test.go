package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const responseBody = `{
	"results": [{
		"id": "99",
		"title": "Go Developer",
		"description": "Ship backend features.",
		"company": {"display_name": "Initech"},
		"location": {"display_name": "Berlin, Germany"},
		"category": {"label": "IT Jobs"},
		"salary_min": 60000,
		"salary_max": 80000,
		"contract_type": "full_time",
		"created": "2026-08-01T09:00:00Z",
		"redirect_url": "https://example.com/99"
	}],
	"count": 1234
}`

// newTestClient points a credentialed client at a stub server and returns
// the values of the last query it received.
func newTestClient(t *testing.T, status int, body string) (*Client, *url.Values) {
	t.Helper()
	var lastQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-id", "test-key", nil)
	c.baseURL = srv.URL
	return c, &lastQuery
}

func TestSearch_DisabledWithoutCredentials(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient("", "", nil)
	c.baseURL = srv.URL

	page, err := c.Search(context.Background(), Query{Country: "gb"})
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.False(t, called, "disabled client must not attempt network I/O")
}

func TestSearch_CountryRequired(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, responseBody)
	_, err := c.Search(context.Background(), Query{})
	assert.Error(t, err)
}

func TestSearch_RemoteDropsLocationAndExcludesOnsite(t *testing.T) {
	c, q := newTestClient(t, http.StatusOK, responseBody)

	_, err := c.Search(context.Background(), Query{
		Query:    "developer",
		City:     "London",
		Country:  "gb",
		WorkMode: "remote",
	})
	require.NoError(t, err)

	assert.Equal(t, "developer", q.Get("what"))
	assert.Equal(t, "on-site,office-based", q.Get("what_exclude"))
	assert.False(t, q.Has("where"), "remote searches must not be location-bound")
}

func TestSearch_RemoteWithoutQuerySearchesForRemote(t *testing.T) {
	c, q := newTestClient(t, http.StatusOK, responseBody)

	_, err := c.Search(context.Background(), Query{Country: "gb", WorkMode: "remote"})
	require.NoError(t, err)

	assert.Equal(t, "remote", q.Get("what"))
	assert.False(t, q.Has("where"))
}

func TestSearch_NonRemotePassesQueryAndCityThrough(t *testing.T) {
	c, q := newTestClient(t, http.StatusOK, responseBody)

	_, err := c.Search(context.Background(), Query{
		Query:   "developer",
		City:    "London",
		Country: "gb",
	})
	require.NoError(t, err)

	assert.Equal(t, "developer", q.Get("what"))
	assert.Equal(t, "London", q.Get("where"))
	assert.False(t, q.Has("what_exclude"))
}

func TestSearch_ContractTypeFlags(t *testing.T) {
	cases := []struct {
		contractType  string
		wantFullTime  bool
		wantPermanent bool
	}{
		{"Full-time", true, false},
		{"full time", true, false},
		{"Permanent", false, true},
		{"Part-time", false, false}, // no upstream equivalent
		{"Contract", false, false},
		{"Internship", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		c, q := newTestClient(t, http.StatusOK, responseBody)
		_, err := c.Search(context.Background(), Query{Country: "gb", ContractType: tc.contractType})
		require.NoError(t, err)

		assert.Equal(t, tc.wantFullTime, q.Get("full_time") == "1", "contractType %q full_time", tc.contractType)
		assert.Equal(t, tc.wantPermanent, q.Get("permanent") == "1", "contractType %q permanent", tc.contractType)
	}
}

func TestSearch_PageSizeCappedAtUpstreamMax(t *testing.T) {
	c, q := newTestClient(t, http.StatusOK, responseBody)

	_, err := c.Search(context.Background(), Query{Country: "gb", PerPage: 200})
	require.NoError(t, err)

	assert.Equal(t, "50", q.Get("results_per_page"))
}

func TestSearch_CredentialsAttached(t *testing.T) {
	c, q := newTestClient(t, http.StatusOK, responseBody)

	_, err := c.Search(context.Background(), Query{Country: "gb"})
	require.NoError(t, err)

	assert.Equal(t, "test-id", q.Get("app_id"))
	assert.Equal(t, "test-key", q.Get("app_key"))
}

func TestSearch_NonSuccessStatusIsError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusTooManyRequests, `{"error":"rate limited"}`)

	page, err := c.Search(context.Background(), Query{Country: "gb"})
	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestSearch_NormalizesResults(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, responseBody)

	page, err := c.Search(context.Background(), Query{Country: "de"})
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, 1234, page.Count)
	require.Len(t, page.Jobs, 1)

	job := page.Jobs[0]
	assert.Equal(t, "adzuna_99", job.ID)
	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, "adzuna", job.Source)
	assert.Equal(t, "full_time", job.Type)
	require.NotNil(t, job.Salary)
	assert.Equal(t, "€60,000 - €80,000", *job.Salary)
	assert.Equal(t, "https://example.com/99", job.ExternalURL)
	assert.Equal(t, "Initech", job.PostedBy.Name)
}

func TestRedact_StripsCredentials(t *testing.T) {
	c := NewClient("my-id", "my-secret", nil)
	got := c.redact("https://api.example/search?app_id=my-id&app_key=my-secret")
	assert.NotContains(t, got, "my-secret")
	assert.NotContains(t, got, "my-id")
}
