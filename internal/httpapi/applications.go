package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
	"github.com/joannaWebDev/jobtracker-pro/internal/tracker"
)

// CreateApplication handles POST /api/applications.
func (h *Handler) CreateApplication(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var in tracker.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	app, err := h.apps.Create(c.Request.Context(), uid, in)
	if err != nil {
		writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "application": app})
}

// ListApplications handles GET /api/applications.
func (h *Handler) ListApplications(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	apps, err := h.apps.List(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// UpdateApplicationStatus handles PATCH /api/applications/:id.
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain status"})
		return
	}

	app, err := h.apps.UpdateStatus(c.Request.Context(), uid, c.Param("id"), body.Status)
	if err != nil {
		writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "application": app})
}

// CreateSavedSearch handles POST /api/saved-searches.
func (h *Handler) CreateSavedSearch(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var body struct {
		Query    string `json:"query"`
		Company  string `json:"company"`
		Type     string `json:"type"`
		WorkMode string `json:"workMode"`
		Region   string `json:"region"`
		Country  string `json:"country"`
		City     string `json:"city"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	saved, err := h.saved.Create(c.Request.Context(), uid, model.SearchRequest{
		Query:    body.Query,
		Company:  body.Company,
		Type:     body.Type,
		WorkMode: body.WorkMode,
		Region:   body.Region,
		Country:  body.Country,
		City:     body.City,
	})
	if err != nil {
		writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "savedSearch": saved})
}

// ListSavedSearches handles GET /api/saved-searches.
func (h *Handler) ListSavedSearches(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	searches, err := h.saved.ListByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"savedSearches": searches})
}

// writeTrackerError maps tracker errors onto HTTP statuses.
func writeTrackerError(c *gin.Context, err error) {
	var verr *tracker.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, tracker.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
