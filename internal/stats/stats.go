// Package stats buckets the job set by a chosen dimension for chart
// display.
package stats

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"jobscout/dashboard-service/internal/kanban"
)

// Dimension selects the bucketing axis.
type Dimension string

const (
	DimensionIndustry  Dimension = "industry"
	DimensionSeniority Dimension = "seniority"
	DimensionStatus    Dimension = "status"
)

// ParseDimension validates a raw dimension string.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	switch d {
	case DimensionIndustry, DimensionSeniority, DimensionStatus:
		return d, nil
	}
	return "", fmt.Errorf("unknown stats dimension %q", s)
}

// Bucket is one chart slice.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Industry inference rules, checked in order; the first match wins and
// anything unmatched lands in Tech.
var industryRules = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`bank|finance|wealth|fintech`), "Fintech"},
	{regexp.MustCompile(`insurance|underwrit`), "Insurance"},
	{regexp.MustCompile(`gov|public|council|nhs`), "Public Sector"},
	{regexp.MustCompile(`agency|studio`), "Agency"},
}

// InferIndustry is the authoritative industry classification: the analyzed
// industry when it is set and not the literal "Other", else a keyword scan
// over company + title + summary. It is intentionally richer than the
// views-side Tech default.
func InferIndustry(j kanban.Job) string {
	if j.Analysis != nil && j.Analysis.Industry != "" && j.Analysis.Industry != "Other" {
		return j.Analysis.Industry
	}
	text := strings.ToLower(j.Company + " " + j.Title + " " + j.Summary)
	for _, rule := range industryRules {
		if rule.pattern.MatchString(text) {
			return rule.name
		}
	}
	return "Tech"
}

// Aggregate buckets jobs along the given dimension, sorted descending by
// value with a name tiebreak for deterministic output.
func Aggregate(jobs []kanban.Job, dim Dimension) []Bucket {
	counts := make(map[string]int)
	for _, j := range jobs {
		counts[bucketName(j, dim)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for name, value := range counts {
		buckets = append(buckets, Bucket{Name: name, Value: value})
	}
	sort.Slice(buckets, func(a, b int) bool {
		if buckets[a].Value != buckets[b].Value {
			return buckets[a].Value > buckets[b].Value
		}
		return buckets[a].Name < buckets[b].Name
	})
	return buckets
}

func bucketName(j kanban.Job, dim Dimension) string {
	switch dim {
	case DimensionSeniority:
		if j.SeniorityScore == "" {
			return "Unspecified"
		}
		return string(j.SeniorityScore)
	case DimensionStatus:
		return titleCase(string(kanban.NormalizeStatus(j.Status)))
	default:
		return InferIndustry(j)
	}
}

// titleCase capitalizes the first letter: "new" → "New".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
