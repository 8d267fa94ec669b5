// Package search implements the job aggregation pipeline: multi-country
// fetch against the upstream provider, post-fetch filtering for everything
// the upstream cannot express, merge, sort and pagination.
package search

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joannaWebDev/jobtracker-pro/internal/adzuna"
	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

// Provider is the upstream job source. adzuna.Client implements it; tests
// substitute fakes. A disabled provider returns (nil, nil).
type Provider interface {
	Enabled() bool
	Search(ctx context.Context, q adzuna.Query) (*adzuna.Page, error)
}

const (
	// upstreamMax is the hard per-call result cap the provider enforces.
	upstreamMax = 50

	// fetchDelay spaces out fetch-phase country calls once results exist,
	// on top of the shared limiter interval.
	fetchDelay = 500 * time.Millisecond

	// DefaultPerPage is used when the caller gives no page size.
	DefaultPerPage = 25
)

// clientSideTypes are contract types Adzuna cannot filter natively; they are
// satisfied entirely by post-fetch keyword matching.
var clientSideTypes = map[string]bool{
	"Part-time":  true,
	"Contract":   true,
	"Internship": true,
}

// Engine orchestrates multi-country search. Countries are fetched
// sequentially so the shared limiter's global ordering guarantee holds; a
// search runs every resolved country to completion or failure, with no
// retries and no mid-search cancellation.
type Engine struct {
	provider Provider
	limiter  *Limiter
	delay    time.Duration
	now      func() time.Time
}

// NewEngine returns an Engine using the process-wide limiter.
func NewEngine(provider Provider, limiter *Limiter) *Engine {
	return &Engine{
		provider: provider,
		limiter:  limiter,
		delay:    fetchDelay,
		now:      time.Now,
	}
}

// Search runs the full aggregation pipeline for one request.
//
// Degraded upstreams never fail the request: a country that errors
// contributes zero jobs, and APIError is set only when every resolved
// country failed.
func (e *Engine) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResult, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	// An explicit country always wins, so the city probe only runs when the
	// search scope is a region.
	region, country := req.Region, req.Country
	var correction *model.Correction
	if country == "" {
		if correction = e.correctRegion(ctx, req.City, region); correction != nil {
			region = correction.CorrectedRegion
			country = correction.CorrectedCountry
		}
	}

	result := &model.SearchResult{
		Jobs:              []model.Job{},
		CorrectionApplied: correction,
	}

	countries := ResolveCountries(region, country)
	if len(countries) == 0 {
		return result, nil
	}

	// Filters the upstream cannot express make its reported counts wrong,
	// so the count phase is skipped whenever any of them is active.
	approximate := clientSideTypes[req.Type] || req.Company != "" || req.DatePosted != ""

	upstreamTotal := 0
	if !approximate {
		for _, c := range countries {
			e.limiter.Wait()
			p, err := e.provider.Search(ctx, adzuna.Query{
				Query:        req.Query,
				City:         req.City,
				Country:      c,
				ContractType: req.Type,
				WorkMode:     req.WorkMode,
				Page:         1,
				PerPage:      1,
			})
			if err != nil {
				slog.Warn("count probe failed", "country", c, "err", err)
				continue
			}
			if p != nil {
				upstreamTotal += p.Count
			}
		}
	}

	// Over-fetch to survive post-fetch filtering: double once per active
	// approximate filter, floor 2x, capped at the upstream per-call max.
	multiplier := 1
	if req.WorkMode != "" {
		multiplier *= 2
	}
	if req.Company != "" {
		multiplier *= 2
	}
	if req.DatePosted != "" {
		multiplier *= 2
	}
	if clientSideTypes[req.Type] {
		multiplier *= 2
	}
	if multiplier < 2 {
		multiplier = 2
	}
	fetchSize := perPage * multiplier
	if fetchSize > upstreamMax {
		fetchSize = upstreamMax
	}

	merged := make([]model.Job, 0, perPage)
	var lastErr error
	succeeded := 0
	for _, c := range countries {
		if len(merged) > 0 {
			time.Sleep(e.delay)
		}
		e.limiter.Wait()

		p, err := e.provider.Search(ctx, adzuna.Query{
			Query:        req.Query,
			City:         req.City,
			Country:      c,
			ContractType: req.Type,
			WorkMode:     req.WorkMode,
			Page:         page,
			PerPage:      fetchSize,
		})
		if err != nil {
			slog.Error("country fetch failed", "country", c, "err", err)
			lastErr = err
			continue
		}
		succeeded++
		if p == nil {
			continue // provider disabled
		}

		jobs := filterContractType(p.Jobs, req.Type)
		jobs = filterCompany(jobs, req.Company)
		jobs = filterDatePosted(jobs, req.DatePosted, e.now())

		if remaining := perPage - len(merged); remaining > 0 {
			if len(jobs) > remaining {
				jobs = jobs[:remaining]
			}
			merged = append(merged, jobs...)
		}
		if len(merged) >= perPage {
			break
		}
	}

	if req.WorkMode != "" {
		filtered := merged[:0]
		for _, job := range merged {
			if MatchesWorkMode(req.WorkMode, job.Description, job.Title) {
				filtered = append(filtered, job)
			}
		}
		merged = filtered
	}

	// Global sort across all countries' contributions, newest first.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PostedAt.After(merged[j].PostedAt)
	})

	hasClientFiltering := req.WorkMode != "" || approximate
	totalJobs := upstreamTotal
	if hasClientFiltering {
		totalJobs = len(merged)
	}

	result.TotalJobs = totalJobs
	result.TotalPages = (totalJobs + perPage - 1) / perPage

	// Pagination slices the current fetch's merged set: page k was fetched
	// with upstream page=k, not cut from a materialized global list. Known
	// approximation, kept on purpose.
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(merged) {
		start = len(merged)
	}
	if end > len(merged) {
		end = len(merged)
	}
	result.Jobs = merged[start:end]

	if succeeded == 0 && lastErr != nil {
		result.APIError = lastErr.Error()
	}
	return result, nil
}

// filterContractType keeps jobs whose normalized type matches a contract
// type the upstream cannot filter. Native types pass through untouched.
func filterContractType(jobs []model.Job, searchType string) []model.Job {
	if !clientSideTypes[searchType] {
		return jobs
	}
	st := strings.ToLower(searchType)
	spaced := strings.ReplaceAll(st, "-", " ")

	kept := jobs[:0]
	for _, job := range jobs {
		jt := strings.ToLower(job.Type)
		match := strings.Contains(jt, spaced) ||
			strings.Contains(jt, st) ||
			(searchType == "Part-time" && (strings.Contains(jt, "part") || strings.Contains(jt, "temporary"))) ||
			(searchType == "Contract" && (strings.Contains(jt, "contract") || strings.Contains(jt, "freelance"))) ||
			(searchType == "Internship" && strings.Contains(jt, "intern"))
		if match {
			kept = append(kept, job)
		}
	}
	return kept
}

// filterCompany keeps jobs whose company contains the search string, compared
// both verbatim and with all whitespace stripped ("Open AI" matches "openai").
func filterCompany(jobs []model.Job, company string) []model.Job {
	if company == "" {
		return jobs
	}
	q := strings.ToLower(company)
	qStripped := stripWhitespace(q)

	kept := jobs[:0]
	for _, job := range jobs {
		name := strings.ToLower(job.Company)
		if strings.Contains(name, q) || strings.Contains(stripWhitespace(name), qStripped) {
			kept = append(kept, job)
		}
	}
	return kept
}

// filterDatePosted keeps jobs posted on or after now minus N days. A value
// that does not parse as an integer filters nothing.
func filterDatePosted(jobs []model.Job, datePosted string, now time.Time) []model.Job {
	if datePosted == "" {
		return jobs
	}
	days, err := strconv.Atoi(datePosted)
	if err != nil {
		return jobs
	}
	cutoff := now.AddDate(0, 0, -days)

	kept := jobs[:0]
	for _, job := range jobs {
		if !job.PostedAt.Before(cutoff) {
			kept = append(kept, job)
		}
	}
	return kept
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
