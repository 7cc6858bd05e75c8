package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/dashboard-service/internal/kanban"
)

func analyzed(id string, score int, industry, pattern string) kanban.Job {
	return kanban.Job{
		ID: id,
		Analysis: &kanban.JobAnalysis{
			Score:       score,
			Industry:    industry,
			WorkPattern: pattern,
		},
	}
}

func ids(jobs []kanban.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestComputeVisible_TabFilter(t *testing.T) {
	jobs := []kanban.Job{
		{ID: "n", Status: kanban.StatusNew},
		{ID: "implicit-new"}, // empty status counts as new
		{ID: "s", Status: kanban.StatusSaved},
		{ID: "a", Status: kanban.StatusApplied},
		{ID: "i", Status: kanban.StatusInterview},
		{ID: "o", Status: kanban.StatusOffer},
		{ID: "x", Status: kanban.StatusArchived},
	}

	assert.ElementsMatch(t, []string{"n", "implicit-new"},
		ids(ComputeVisible(jobs, Filters{Tab: kanban.TabNew})))
	assert.ElementsMatch(t, []string{"s", "a", "i", "o"},
		ids(ComputeVisible(jobs, Filters{Tab: kanban.TabSaved})))
	assert.ElementsMatch(t, []string{"x"},
		ids(ComputeVisible(jobs, Filters{Tab: kanban.TabArchived})))
}

func TestComputeVisible_TabsPartitionCollection(t *testing.T) {
	jobs := []kanban.Job{
		{ID: "1"},
		{ID: "2", Status: kanban.StatusSaved},
		{ID: "3", Status: kanban.StatusAssessment},
		{ID: "4", Status: kanban.StatusArchived},
		{ID: "5", Status: kanban.StatusOffer},
	}

	seen := map[string]int{}
	for _, tab := range []kanban.Tab{kanban.TabNew, kanban.TabSaved, kanban.TabArchived} {
		for _, j := range ComputeVisible(jobs, Filters{Tab: tab}) {
			seen[j.ID]++
		}
	}
	// Every job lands in exactly one tab.
	require.Len(t, seen, len(jobs))
	for id, n := range seen {
		assert.Equal(t, 1, n, "job %s appears in %d tabs", id, n)
	}
}

func TestComputeVisible_CityFilter(t *testing.T) {
	jobs := []kanban.Job{
		{ID: "edi", Location: "Edinburgh, UK"},
		{ID: "gla", Location: "Glasgow"},
		{ID: "rem", Location: "Remote (UK)"},
		{ID: "elsewhere", Location: "Aberdeen"},
		{ID: "none", Location: ""},
	}

	assert.ElementsMatch(t, []string{"edi"},
		ids(ComputeVisible(jobs, Filters{City: "Edinburgh"})))
	assert.ElementsMatch(t, []string{"elsewhere", "none"},
		ids(ComputeVisible(jobs, Filters{City: CityOther})))
	assert.Len(t, ComputeVisible(jobs, Filters{City: CityAll}), len(jobs))
	assert.Len(t, ComputeVisible(jobs, Filters{}), len(jobs))
}

func TestComputeVisible_IndustryFilterDefaultsToTech(t *testing.T) {
	jobs := []kanban.Job{
		analyzed("fin", 50, "Fintech", ""),
		analyzed("unlabelled", 50, "", ""),
		{ID: "raw"}, // no analysis at all
	}

	// Jobs without an analyzed industry fall into the Tech bucket here,
	// regardless of what the stats inference would say.
	assert.ElementsMatch(t, []string{"unlabelled", "raw"},
		ids(ComputeVisible(jobs, Filters{Industry: "Tech"})))
	assert.ElementsMatch(t, []string{"fin"},
		ids(ComputeVisible(jobs, Filters{Industry: "Fintech"})))
}

func TestComputeVisible_HighValue(t *testing.T) {
	jobs := []kanban.Job{
		analyzed("hi", 80, "", ""),
		analyzed("higher", 95, "", ""),
		analyzed("lo", 79, "", ""),
		{ID: "raw"},
	}
	assert.ElementsMatch(t, []string{"hi", "higher"},
		ids(ComputeVisible(jobs, Filters{HighValue: true})))
}

func TestComputeVisible_Remote(t *testing.T) {
	jobs := []kanban.Job{
		{ID: "loc", Location: "Remote first"},
		{ID: "sum", Summary: "Work from home available (WFH)"},
		analyzed("pat", 0, "", "Hybrid, 2 days remote"),
		{ID: "office", Location: "Leeds", Summary: "On-site only"},
	}
	assert.ElementsMatch(t, []string{"loc", "sum", "pat"},
		ids(ComputeVisible(jobs, Filters{Remote: true})))
}

func TestComputeVisible_SortByScore(t *testing.T) {
	jobs := []kanban.Job{
		analyzed("low", 40, "", ""),
		analyzed("high", 90, "", ""),
		{ID: "none"}, // missing score sorts as zero
	}
	got := ids(ComputeVisible(jobs, Filters{Sort: SortByScore}))
	assert.Equal(t, []string{"high", "low", "none"}, got)
}

func TestComputeVisible_SortByDateDefault(t *testing.T) {
	jobs := []kanban.Job{
		{ID: "older", ScoutedAt: 100},
		{ID: "newer", ScoutedAt: 200},
		{ID: "unset"},
	}
	assert.Equal(t, []string{"newer", "older", "unset"},
		ids(ComputeVisible(jobs, Filters{})))
	assert.Equal(t, []string{"newer", "older", "unset"},
		ids(ComputeVisible(jobs, Filters{Sort: SortByDate})))
}

func TestComputeVisible_Pure(t *testing.T) {
	jobs := []kanban.Job{
		analyzed("b", 50, "", ""),
		analyzed("a", 50, "", ""),
		{ID: "c", ScoutedAt: 5},
	}
	f := Filters{Sort: SortByScore}

	first := ids(ComputeVisible(jobs, f))
	second := ids(ComputeVisible(jobs, f))
	// Identical inputs give identical, order-stable output.
	assert.Equal(t, first, second)
	// Equal scores keep input order (stable sort).
	assert.Equal(t, []string{"b", "a", "c"}, first)
	// The input slice itself is untouched.
	assert.Equal(t, "b", jobs[0].ID)
}
