// Package httpapi exposes the REST API.
//
// All /api routes expect an x-user-id header forwarded by the auth gateway;
// session issuance itself is not this service's concern.
//
// Routes:
//
//	GET   /health
//	GET   /api/jobs                → aggregated job search
//	POST  /api/applications        → track an application (status APPLIED)
//	GET   /api/applications        → list caller's applications
//	PATCH /api/applications/:id    → overwrite application status
//	POST  /api/saved-searches      → save a search for background refresh
//	GET   /api/saved-searches      → list caller's saved searches
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
	"github.com/joannaWebDev/jobtracker-pro/internal/tracker"
)

const version = "1.0.0"

// Searcher runs an aggregated job search. Implemented by search.Engine.
type Searcher interface {
	Search(ctx context.Context, req model.SearchRequest) (*model.SearchResult, error)
}

// Handler holds shared dependencies for all routes.
type Handler struct {
	engine Searcher
	apps   *tracker.Service
	saved  *tracker.SavedSearchStore
}

// NewHandler returns a configured Handler.
func NewHandler(engine Searcher, apps *tracker.Service, saved *tracker.SavedSearchStore) *Handler {
	return &Handler{engine: engine, apps: apps, saved: saved}
}

// NewRouter builds the gin engine with CORS and all routes mounted.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "x-user-id"}
	r.Use(cors.New(cfg))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/jobs", h.SearchJobs)
		api.POST("/applications", h.CreateApplication)
		api.GET("/applications", h.ListApplications)
		api.PATCH("/applications/:id", h.UpdateApplicationStatus)
		api.POST("/saved-searches", h.CreateSavedSearch)
		api.GET("/saved-searches", h.ListSavedSearches)
	}

	return r
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "jobtracker-pro",
		"version": version,
	})
}

// userID extracts the authenticated identity, writing a 401 when absent.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("x-user-id")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing x-user-id header"})
		return "", false
	}
	return id, true
}
