package search

import "strings"

// Work-mode detection is string matching over free text: Adzuna has no
// structured remote/hybrid/onsite field. The keyword tables below are shared
// by the filter (MatchesWorkMode) and the card annotation (ClassifyWorkMode)
// so the two can never drift apart. The lists are deliberately pinned by
// tests; they are fuzzy and that is accepted.
var (
	remoteKeywords = []string{
		"remote",
		"work from home",
		"wfh",
		"telecommute",
		"distributed",
		"from anywhere",
		"location independent",
		"flexible location",
		"anywhere",
	}

	// Evidence that a job is NOT remote. Absent all of these, the remote
	// filter leniently assumes remote (what_exclude already removed most
	// on-site postings upstream).
	onsiteEvidence = []string{
		"office required",
		"on-site required",
		"must be based in",
		"hybrid",
	}

	hybridKeywords = []string{
		"hybrid",
		"flexible work",
		"home/office",
		"flexible location",
	}

	onsiteKeywords = []string{
		"on-site",
		"onsite",
		"office-based",
	}
)

// ClassifyWorkMode labels a job "remote", "hybrid" or "onsite" from its
// description and title, or "" when no indicator is present.
func ClassifyWorkMode(description, title string) string {
	text := strings.ToLower(description + " " + title)

	if containsAny(text, remoteKeywords) {
		return "remote"
	}
	if containsAny(text, hybridKeywords) ||
		(strings.Contains(text, "remote") && strings.Contains(text, "office")) {
		return "hybrid"
	}
	if containsAny(text, onsiteKeywords) ||
		(strings.Contains(text, "office") &&
			(strings.Contains(text, "based") || strings.Contains(text, "located"))) {
		return "onsite"
	}
	return ""
}

// MatchesWorkMode reports whether a job passes the work-mode filter. Unlike
// ClassifyWorkMode it carries lenient fallbacks: remote is assumed absent
// explicit on-site evidence, and onsite is assumed absent any remote or
// hybrid wording. Unknown modes match everything.
func MatchesWorkMode(mode, description, title string) bool {
	text := strings.ToLower(description + " " + title)

	switch mode {
	case "remote":
		return containsAny(text, remoteKeywords) || !containsAny(text, onsiteEvidence)
	case "hybrid":
		return containsAny(text, hybridKeywords) ||
			(strings.Contains(text, "remote") && strings.Contains(text, "office"))
	case "onsite":
		return containsAny(text, onsiteKeywords) ||
			(strings.Contains(text, "office") &&
				(strings.Contains(text, "based") || strings.Contains(text, "located"))) ||
			(!strings.Contains(text, "remote") &&
				!strings.Contains(text, "hybrid") &&
				!strings.Contains(text, "wfh"))
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
