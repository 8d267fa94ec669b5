// Package model defines the shared data structures for the job board.
package model

import "time"

// Job is a normalized listing as exposed to callers. Every Job has passed
// through normalization — raw upstream records never leave the adzuna package.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Salary      *string   `json:"salary"`
	PostedAt    time.Time `json:"postedAt"`
	Source      string    `json:"source"`
	ExternalURL string    `json:"externalUrl"`
	PostedBy    PostedBy  `json:"postedBy"`
}

// PostedBy identifies the posting entity. For external jobs this is the
// company name.
type PostedBy struct {
	Name string `json:"name"`
}

// SearchRequest carries one job-search call. Not persisted.
type SearchRequest struct {
	Query      string
	Company    string
	Type       string
	WorkMode   string
	Region     string
	Country    string
	City       string
	DatePosted string // days back, e.g. "7"
	Page       int    // 1-based
	PerPage    int
}

// Correction records an automatic region substitution for a named city.
type Correction struct {
	OriginalRegion   string `json:"originalRegion"`
	CorrectedRegion  string `json:"correctedRegion"`
	CorrectedCountry string `json:"correctedCountry,omitempty"`
	City             string `json:"city"`
}

// SearchResult is the page of jobs plus totals. TotalJobs is the upstream
// sum when all active filters are server-side, otherwise the size of the
// merged client-filtered set.
type SearchResult struct {
	Jobs              []Job       `json:"jobs"`
	TotalJobs         int         `json:"totalJobs"`
	TotalPages        int         `json:"totalPages"`
	APIError          string      `json:"apiError,omitempty"`
	CorrectionApplied *Correction `json:"correctionApplied,omitempty"`
}

// Application is a tracked job application, persisted in PostgreSQL.
// (external_job_id, user_id) is unique.
type Application struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ExternalJobID string    `json:"externalJobId"`
	JobTitle      string    `json:"jobTitle"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	Source        string    `json:"source"`
	ExternalURL   string    `json:"externalUrl"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}

// SavedSearch is a stored SearchRequest refreshed in the background.
// LastTotal holds totalJobs from the previous refresh so new results can be
// detected.
type SavedSearch struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Query     string    `json:"query"`
	Company   string    `json:"company"`
	Type      string    `json:"type"`
	WorkMode  string    `json:"workMode"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	LastTotal int       `json:"lastTotal"`
	CreatedAt time.Time `json:"createdAt"`
}

// Request builds the SearchRequest a background refresh runs for this saved
// search. Refreshes always look at the first page.
func (s *SavedSearch) Request(perPage int) SearchRequest {
	return SearchRequest{
		Query:    s.Query,
		Company:  s.Company,
		Type:     s.Type,
		WorkMode: s.WorkMode,
		Region:   s.Region,
		Country:  s.Country,
		City:     s.City,
		Page:     1,
		PerPage:  perPage,
	}
}
