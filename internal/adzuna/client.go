// Package adzuna implements the Adzuna job-search API client.
//
// The client owns everything about the upstream wire format: request
// shaping (Adzuna has no remote-work field, so the "where" parameter and a
// what_exclude hint stand in for it), credential handling, and the
// normalization of raw records into model.Job. No raw upstream record ever
// leaves this package.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

const (
	defaultBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	maxPageSize     = 50 // Adzuna hard limit per request
	defaultPageSize = 20
	httpTimeout     = 15 * time.Second
	cacheTTL        = 5 * time.Minute
)

// Query describes one page request against a single country endpoint.
type Query struct {
	Query        string
	City         string
	Country      string
	ContractType string
	WorkMode     string
	Page         int // 1-based; 0 means 1
	PerPage      int // capped at maxPageSize; 0 means defaultPageSize
}

// Page is the normalized outcome of one upstream call. Count is Adzuna's own
// total for the query, not the page length.
type Page struct {
	Jobs  []model.Job
	Count int
}

// Client fetches and normalizes jobs from the Adzuna public API.
// If credentials are missing the client is disabled: Search returns
// (nil, nil) without attempting network I/O.
type Client struct {
	appID   string
	appKey  string
	baseURL string
	httpc   *http.Client
	rdb     *redis.Client // optional response cache; nil disables caching
}

// NewClient constructs a Client. rdb may be nil.
func NewClient(appID, appKey string, rdb *redis.Client) *Client {
	if appID == "" || appKey == "" {
		slog.Warn("adzuna credentials not found, external job fetching disabled")
	}
	return &Client{
		appID:   appID,
		appKey:  appKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: httpTimeout},
		rdb:     rdb,
	}
}

// Enabled reports whether credentials are configured.
func (c *Client) Enabled() bool {
	return c.appID != "" && c.appKey != ""
}

// Search issues one call against q.Country and returns the normalized page.
// Returns (nil, nil) when the client is disabled.
func (c *Client) Search(ctx context.Context, q Query) (*Page, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if q.Country == "" {
		return nil, fmt.Errorf("country is required")
	}

	params := url.Values{}

	// Adzuna has no dedicated remote-work field. For remote searches the
	// location parameter is dropped entirely (remote jobs are not
	// location-bound) and on-site wording is excluded from the match;
	// the work-mode text heuristic does the rest after fetch.
	if q.WorkMode == "remote" {
		if q.Query != "" {
			params.Set("what", q.Query)
			params.Set("what_exclude", "on-site,office-based")
		} else {
			params.Set("what", "remote")
		}
	} else {
		if q.Query != "" {
			params.Set("what", q.Query)
		}
		if q.City != "" {
			params.Set("where", q.City)
		}
	}

	// Only two contract filters exist upstream. Part-time, Contract and
	// Internship are left to the post-fetch filters.
	switch strings.ToLower(q.ContractType) {
	case "full-time", "full time":
		params.Set("full_time", "1")
	case "permanent":
		params.Set("permanent", "1")
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPageSize
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}
	params.Set("results_per_page", strconv.Itoa(perPage))

	page := q.Page
	if page <= 0 {
		page = 1
	}

	resp, err := c.fetch(ctx, q.Country, page, params)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(resp.Results))
	for _, r := range resp.Results {
		jobs = append(jobs, normalize(r, q.Country))
	}
	return &Page{Jobs: jobs, Count: resp.Count}, nil
}

// fetch performs the HTTP round trip, going through the redis response cache
// when one is configured. Cache keys never contain credentials.
func (c *Client) fetch(ctx context.Context, country string, page int, params url.Values) (*apiResponse, error) {
	cacheKey := fmt.Sprintf("adzuna:%s:%d:%s", country, page, params.Encode())

	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp apiResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	authed := url.Values{}
	for k, v := range params {
		authed[k] = v
	}
	authed.Set("app_id", c.appID)
	authed.Set("app_key", c.appKey)

	reqURL := fmt.Sprintf("%s/%s/search/%d?%s", c.baseURL, country, page, authed.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "JobTrackerPro/1.0")

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		slog.Error("adzuna API error",
			"status", httpResp.StatusCode,
			"url", c.redact(reqURL),
			"body", string(body),
		)
		return nil, fmt.Errorf("adzuna returned %d", httpResp.StatusCode)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, cacheKey, body, cacheTTL).Err(); err != nil {
			slog.Warn("adzuna cache write failed", "err", err)
		}
	}

	return &resp, nil
}

// redact strips credentials from a URL before it reaches the logs.
func (c *Client) redact(u string) string {
	u = strings.ReplaceAll(u, c.appKey, "[REDACTED]")
	return strings.ReplaceAll(u, c.appID, "[REDACTED]")
}
