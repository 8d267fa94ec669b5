package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joannaWebDev/jobtracker-pro/internal/adzuna"
	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

// europeCountries is the ordered list of Adzuna country endpoints queried for
// region "europe".
var europeCountries = []string{"gb", "de", "fr", "it", "es", "nl", "at", "be", "ch"}

// ResolveCountries maps a region/country selection to the ordered list of
// country codes to query. An explicit country always wins. With neither a
// region nor a country there is no search scope and the list is empty — the
// caller must not query upstream.
func ResolveCountries(region, country string) []string {
	if country != "" {
		return []string{country}
	}
	switch region {
	case "us":
		return []string{"us"}
	case "europe":
		return append([]string(nil), europeCountries...)
	}
	return nil
}

// oppositeRegion returns the region on the other side of the Atlantic, or ""
// for unknown regions.
func oppositeRegion(region string) string {
	switch region {
	case "us":
		return "europe"
	case "europe":
		return "us"
	}
	return ""
}

// probeSampleSize keeps correction probes cheap: a handful of results is
// enough to check whether a city shows up in the opposite region.
const probeSampleSize = 5

// correctRegion reconciles a named city with an apparently wrong region by
// probing countries in the opposite region. A country whose results mention
// the city in their location or description confirms the mismatch; the
// correction is surfaced to the caller, never applied silently. Returns nil
// when city or region is absent or no contradicting evidence is found.
func (e *Engine) correctRegion(ctx context.Context, city, region string) *model.Correction {
	if city == "" || region == "" {
		return nil
	}
	opposite := oppositeRegion(region)
	if opposite == "" {
		return nil
	}

	cityLower := strings.ToLower(city)
	for _, country := range ResolveCountries(opposite, "") {
		e.limiter.Wait()
		page, err := e.provider.Search(ctx, adzuna.Query{
			Query:   city,
			Country: country,
			Page:    1,
			PerPage: probeSampleSize,
		})
		if err != nil {
			slog.Warn("region probe failed", "country", country, "err", err)
			continue
		}
		if page == nil {
			return nil // provider disabled, nothing to learn
		}
		for _, job := range page.Jobs {
			text := strings.ToLower(job.Location + " " + job.Description)
			if strings.Contains(text, cityLower) {
				return &model.Correction{
					OriginalRegion:   region,
					CorrectedRegion:  opposite,
					CorrectedCountry: country,
					City:             city,
				}
			}
		}
	}
	return nil
}
