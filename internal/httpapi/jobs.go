package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
	"github.com/joannaWebDev/jobtracker-pro/internal/search"
)

// allowedPerPage is the fixed set of page sizes the API accepts; anything
// else falls back to the default.
var allowedPerPage = map[int]bool{10: true, 25: true, 50: true, 100: true}

func clampPerPage(v int) int {
	if allowedPerPage[v] {
		return v
	}
	return search.DefaultPerPage
}

// annotatedJob decorates a Job with its inferred work mode for display.
type annotatedJob struct {
	model.Job
	WorkMode string `json:"workMode,omitempty"`
}

// searchResponse is the wire shape of GET /api/jobs.
type searchResponse struct {
	Jobs              []annotatedJob    `json:"jobs"`
	TotalJobs         int               `json:"totalJobs"`
	TotalPages        int               `json:"totalPages"`
	APIError          string            `json:"apiError,omitempty"`
	CorrectionApplied *model.Correction `json:"correctionApplied,omitempty"`
	Message           string            `json:"message,omitempty"`
}

// SearchJobs handles GET /api/jobs.
func (h *Handler) SearchJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "25"))

	req := model.SearchRequest{
		Query:      c.Query("q"),
		Company:    c.Query("company"),
		Type:       c.Query("type"),
		WorkMode:   c.Query("workMode"),
		Region:     c.Query("region"),
		Country:    c.Query("country"),
		City:       c.Query("city"),
		DatePosted: c.Query("datePosted"),
		Page:       page,
		PerPage:    clampPerPage(perPage),
	}

	result, err := h.engine.Search(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed: " + err.Error()})
		return
	}

	resp := searchResponse{
		Jobs:              make([]annotatedJob, 0, len(result.Jobs)),
		TotalJobs:         result.TotalJobs,
		TotalPages:        result.TotalPages,
		APIError:          result.APIError,
		CorrectionApplied: result.CorrectionApplied,
	}
	for _, job := range result.Jobs {
		resp.Jobs = append(resp.Jobs, annotatedJob{
			Job:      job,
			WorkMode: search.ClassifyWorkMode(job.Description, job.Title),
		})
	}

	if req.Region == "" && req.Country == "" {
		resp.Message = "select a region or country to search"
	}

	c.JSON(http.StatusOK, resp)
}
