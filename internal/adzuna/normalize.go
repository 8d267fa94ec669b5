package adzuna

import (
	"math"
	"strconv"
	"time"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

const (
	// Source tags externally-sourced jobs; job IDs are prefixed with it so
	// they can never collide with locally-posted jobs.
	Source = "adzuna"

	descriptionLimit = 500
)

// apiResponse mirrors the top-level Adzuna JSON response.
type apiResponse struct {
	Results []apiJob `json:"results"`
	Count   int      `json:"count"`
}

// apiJob mirrors a single raw Adzuna listing.
type apiJob struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
	ContractType string `json:"contract_type"`
	Created      string `json:"created"`
	RedirectURL  string `json:"redirect_url"`
}

// normalize converts a raw Adzuna record into the canonical Job shape.
// Truncation and salary formatting happen here, once, permanently.
func normalize(raw apiJob, country string) model.Job {
	jobType := raw.ContractType
	if jobType == "" {
		jobType = "Full-time"
	}

	postedAt, err := time.Parse(time.RFC3339, raw.Created)
	if err != nil {
		postedAt = time.Time{}
	}

	return model.Job{
		ID:          Source + "_" + raw.ID,
		Title:       raw.Title,
		Company:     raw.Company.DisplayName,
		Location:    raw.Location.DisplayName,
		Type:        jobType,
		Description: truncate(raw.Description, descriptionLimit),
		Salary:      formatSalary(raw.SalaryMin, raw.SalaryMax, currencySymbol(country)),
		PostedAt:    postedAt,
		Source:      Source,
		ExternalURL: raw.RedirectURL,
		PostedBy:    model.PostedBy{Name: raw.Company.DisplayName},
	}
}

// truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// currencySymbol maps an Adzuna country code to a display currency symbol.
// Unknown codes fall back to $.
func currencySymbol(country string) string {
	switch country {
	case "gb":
		return "£"
	case "de", "fr", "it", "es", "nl", "at", "be":
		return "€"
	case "ch":
		return "CHF "
	case "au", "ca":
		return "CAD $"
	case "nz":
		return "NZD $"
	case "in":
		return "₹"
	case "sg":
		return "SGD $"
	case "za":
		return "R"
	case "br":
		return "R$"
	case "mx":
		return "MX$"
	case "pl":
		return "zł"
	default:
		return "$"
	}
}

// formatSalary builds the display salary string, or nil when the source has
// no salary data. "min - max" when both bounds exist, "min+" otherwise.
func formatSalary(min, max float64, symbol string) *string {
	var s string
	switch {
	case min > 0 && max > 0:
		s = symbol + groupThousands(min) + " - " + symbol + groupThousands(max)
	case min > 0:
		s = symbol + groupThousands(min) + "+"
	default:
		return nil
	}
	return &s
}

// groupThousands renders a rounded amount with comma separators (42,500).
func groupThousands(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
