// Package identity derives stable job identifiers and guards manual entry
// against duplicates.
package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobscout/dashboard-service/internal/kanban"
)

// maxIDLen caps the derived identifier length.
const maxIDLen = 100

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// ResolveID derives the canonical id for a scouted posting from its title
// and company. Two discoveries of the same (title, company) pair always
// resolve to the same id, which is what makes upsert-by-id merge
// re-discoveries instead of duplicating them.
func ResolveID(title, company string) string {
	id := nonAlnum.ReplaceAllString(strings.ToLower(title+"_"+company), "_")
	if len(id) > maxIDLen {
		id = id[:maxIDLen]
	}
	return id
}

// ManualID returns an id in the manual-entry namespace. The prefix keeps
// manual ids out of the derived scheme; collisions at millisecond
// granularity are treated as negligible for a single-user collection.
func ManualID(now time.Time) string {
	return fmt.Sprintf("manual-%d", now.UnixMilli())
}

// normalize is the match key used for title/company comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsDuplicate reports whether a manual-entry candidate matches an existing
// job. Two rules, checked in order:
//
//  1. URL mode: the candidate carries a real (non-sentinel) URL and some
//     existing job has the identical URL string, case-sensitive.
//  2. Title+company mode: both fields are supplied and some existing job
//     matches on normalized (trim + lowercase) title AND company.
//
// With insufficient data for either rule the candidate is not a duplicate.
func IsDuplicate(candidate kanban.Job, existing []kanban.Job) bool {
	if candidate.URL != "" && candidate.URL != kanban.ManualEntryURL {
		for _, j := range existing {
			if j.URL == candidate.URL {
				return true
			}
		}
	}

	title := normalize(candidate.Title)
	company := normalize(candidate.Company)
	if title == "" || company == "" {
		return false
	}
	for _, j := range existing {
		if normalize(j.Title) == title && normalize(j.Company) == company {
			return true
		}
	}
	return false
}
