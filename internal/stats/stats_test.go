package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/dashboard-service/internal/kanban"
)

func TestInferIndustry_AnalyzedValueWins(t *testing.T) {
	j := kanban.Job{
		Company:  "Barclays Bank", // keyword scan would say Fintech anyway
		Analysis: &kanban.JobAnalysis{Industry: "Insurance"},
	}
	assert.Equal(t, "Insurance", InferIndustry(j))
}

func TestInferIndustry_OtherFallsThroughToKeywords(t *testing.T) {
	j := kanban.Job{
		Company:  "City Council",
		Analysis: &kanban.JobAnalysis{Industry: "Other"},
	}
	assert.Equal(t, "Public Sector", InferIndustry(j))
}

func TestInferIndustry_Keywords(t *testing.T) {
	tests := []struct {
		name string
		job  kanban.Job
		want string
	}{
		{"bank", kanban.Job{Company: "Monzo Bank"}, "Fintech"},
		{"wealth", kanban.Job{Summary: "wealth management platform"}, "Fintech"},
		{"underwriting", kanban.Job{Title: "Underwriting Systems Lead"}, "Insurance"},
		{"nhs", kanban.Job{Company: "NHS Scotland"}, "Public Sector"},
		{"studio", kanban.Job{Company: "Pixel Studio"}, "Agency"},
		{"default", kanban.Job{Company: "Widgets Ltd", Title: "Engineer"}, "Tech"},
		{"fintech beats insurance by order", kanban.Job{Summary: "fintech insurance product"}, "Fintech"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferIndustry(tt.job))
		})
	}
}

func TestAggregate_Industry(t *testing.T) {
	jobs := []kanban.Job{
		{Company: "First Bank"},
		{Company: "Finance Corp"},
		{Summary: "a fintech scale-up"},
		{Company: "Widgets Ltd"},
	}
	got := Aggregate(jobs, DimensionIndustry)
	require.Equal(t, []Bucket{
		{Name: "Fintech", Value: 3},
		{Name: "Tech", Value: 1},
	}, got)
}

func TestAggregate_Seniority(t *testing.T) {
	jobs := []kanban.Job{
		{SeniorityScore: kanban.SenioritySenior},
		{SeniorityScore: kanban.SenioritySenior},
		{SeniorityScore: kanban.SeniorityMid},
		{}, // unset
	}
	got := Aggregate(jobs, DimensionSeniority)
	require.Equal(t, []Bucket{
		{Name: "Senior", Value: 2},
		{Name: "Mid", Value: 1},
		{Name: "Unspecified", Value: 1},
	}, got)
}

func TestAggregate_Status(t *testing.T) {
	jobs := []kanban.Job{
		{Status: kanban.StatusSaved},
		{Status: kanban.StatusSaved},
		{Status: kanban.StatusApplied},
		{}, // missing status counts as New
	}
	got := Aggregate(jobs, DimensionStatus)
	require.Equal(t, []Bucket{
		{Name: "Saved", Value: 2},
		{Name: "Applied", Value: 1},
		{Name: "New", Value: 1},
	}, got)
}

func TestAggregate_SortOrderDeterministic(t *testing.T) {
	jobs := []kanban.Job{
		{Status: kanban.StatusOffer},
		{Status: kanban.StatusApplied},
	}
	// Equal counts break ties by name, ascending.
	got := Aggregate(jobs, DimensionStatus)
	require.Equal(t, []Bucket{
		{Name: "Applied", Value: 1},
		{Name: "Offer", Value: 1},
	}, got)
}

func TestParseDimension(t *testing.T) {
	for _, s := range []string{"industry", "seniority", "status"} {
		d, err := ParseDimension(s)
		require.NoError(t, err)
		assert.Equal(t, Dimension(s), d)
	}
	_, err := ParseDimension("salary")
	assert.Error(t, err)
}
