// Package views computes the visible, ordered job subset for the dashboard.
// ComputeVisible is a pure function of the collection and the filter
// state, safe to call on every refresh.
package views

import (
	"sort"
	"strings"

	"jobscout/dashboard-service/internal/kanban"
)

// SortKey selects the ordering of the visible list.
type SortKey string

const (
	// SortByDate orders by scouted_at descending (the default).
	SortByDate SortKey = "date"
	// SortByScore orders by analysis score descending.
	SortByScore SortKey = "score"
)

// CityAll and CityOther are the two special values of the city filter.
const (
	CityAll   = "All"
	CityOther = "Other"
)

// knownCities are the named city options; Other matches a location that
// contains none of them.
var knownCities = []string{"edinburgh", "glasgow", "remote", "london", "manchester"}

// remoteMarkers flag a job as remote-friendly when any of them appears in
// the combined location + summary + work pattern text.
var remoteMarkers = []string{"remote", "home", "wfh"}

// Filters is the UI-selected predicate set.
type Filters struct {
	Tab       kanban.Tab
	City      string
	Industry  string
	HighValue bool
	Remote    bool
	Sort      SortKey
}

// ComputeVisible applies the filter pipeline in its fixed order (tab,
// city, industry, special toggles), then sorts. The input slice is not
// modified.
func ComputeVisible(jobs []kanban.Job, f Filters) []kanban.Job {
	visible := make([]kanban.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Tab != "" && kanban.TabFor(j.Status) != f.Tab {
			continue
		}
		if !matchesCity(j.Location, f.City) {
			continue
		}
		if f.Industry != "" && effectiveIndustry(j) != f.Industry {
			continue
		}
		if f.HighValue && !j.IsHighValue() {
			continue
		}
		if f.Remote && !isRemoteFriendly(j) {
			continue
		}
		visible = append(visible, j)
	}

	switch f.Sort {
	case SortByScore:
		sort.SliceStable(visible, func(a, b int) bool {
			return analysisScore(visible[a]) > analysisScore(visible[b])
		})
	default:
		sort.SliceStable(visible, func(a, b int) bool {
			return visible[a].ScoutedAt > visible[b].ScoutedAt
		})
	}
	return visible
}

// matchesCity implements the city filter: All passes everything, a named
// city substring-matches the location, Other passes only locations naming
// none of the known cities.
func matchesCity(location, city string) bool {
	if city == "" || city == CityAll {
		return true
	}
	loc := strings.ToLower(location)
	if city == CityOther {
		for _, known := range knownCities {
			if strings.Contains(loc, known) {
				return false
			}
		}
		return true
	}
	return strings.Contains(loc, strings.ToLower(city))
}

// effectiveIndustry is the filter-side industry: the analysis value when
// present, else the default Tech bucket. The stats engine uses a richer
// keyword inference; the two are kept deliberately distinct (see stats).
func effectiveIndustry(j kanban.Job) string {
	if j.Analysis != nil && j.Analysis.Industry != "" {
		return j.Analysis.Industry
	}
	return "Tech"
}

// isRemoteFriendly scans location, summary and the analyzed work pattern
// for remote markers.
func isRemoteFriendly(j kanban.Job) bool {
	var pattern string
	if j.Analysis != nil {
		pattern = j.Analysis.WorkPattern
	}
	text := strings.ToLower(j.Location + " " + j.Summary + " " + pattern)
	for _, marker := range remoteMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// analysisScore is the sort score; jobs without analysis count as zero.
func analysisScore(j kanban.Job) int {
	if j.Analysis == nil {
		return 0
	}
	return j.Analysis.Score
}
