package kanban_test

import (
	"testing"

	"jobscout/dashboard-service/internal/kanban"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"new", "saved", "applied", "assessment", "interview", "offer", "archived"}
	for _, s := range valid {
		got, err := kanban.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_EmptyMeansNew(t *testing.T) {
	got, err := kanban.ParseStatus("")
	if err != nil {
		t.Fatalf("ParseStatus(\"\") unexpected error: %v", err)
	}
	if got != kanban.StatusNew {
		t.Errorf("ParseStatus(\"\") = %q, want %q", got, kanban.StatusNew)
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "Saved", " applied", "deleted"} {
		if _, err := kanban.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := kanban.NormalizeStatus(""); got != kanban.StatusNew {
		t.Errorf("NormalizeStatus(\"\") = %q, want new", got)
	}
	if got := kanban.NormalizeStatus(kanban.StatusOffer); got != kanban.StatusOffer {
		t.Errorf("NormalizeStatus(offer) = %q, want offer", got)
	}
}

// ── TabFor: the three tabs partition the status set exactly ────────────────

func TestTabFor_Partition(t *testing.T) {
	cases := []struct {
		status kanban.Status
		tab    kanban.Tab
	}{
		{kanban.StatusNew, kanban.TabNew},
		{"", kanban.TabNew},
		{kanban.StatusSaved, kanban.TabSaved},
		{kanban.StatusApplied, kanban.TabSaved},
		{kanban.StatusAssessment, kanban.TabSaved},
		{kanban.StatusInterview, kanban.TabSaved},
		{kanban.StatusOffer, kanban.TabSaved},
		{kanban.StatusArchived, kanban.TabArchived},
	}
	for _, c := range cases {
		if got := kanban.TabFor(c.status); got != c.tab {
			t.Errorf("TabFor(%q) = %q, want %q", c.status, got, c.tab)
		}
	}
}

func TestTabFor_EveryStatusHasExactlyOneTab(t *testing.T) {
	for _, s := range kanban.AllStatuses {
		tab := kanban.TabFor(s)
		if tab != kanban.TabNew && tab != kanban.TabSaved && tab != kanban.TabArchived {
			t.Errorf("TabFor(%q) = %q is not a known tab", s, tab)
		}
	}
}

// ── ToggleSaveTarget ───────────────────────────────────────────────────────

func TestToggleSaveTarget(t *testing.T) {
	cases := []struct {
		from kanban.Status
		to   kanban.Status
	}{
		{kanban.StatusNew, kanban.StatusSaved},
		{kanban.StatusSaved, kanban.StatusNew},
		{kanban.StatusArchived, kanban.StatusNew},
		{"", kanban.StatusSaved}, // implicit new
	}
	for _, c := range cases {
		got, err := kanban.ToggleSaveTarget(c.from)
		if err != nil {
			t.Errorf("ToggleSaveTarget(%q) unexpected error: %v", c.from, err)
			continue
		}
		if got != c.to {
			t.Errorf("ToggleSaveTarget(%q) = %q, want %q", c.from, got, c.to)
		}
	}
}

// Toggling twice from new must round-trip back to new.
func TestToggleSaveTarget_RoundTrip(t *testing.T) {
	saved, err := kanban.ToggleSaveTarget(kanban.StatusNew)
	if err != nil {
		t.Fatalf("toggle from new: %v", err)
	}
	back, err := kanban.ToggleSaveTarget(saved)
	if err != nil {
		t.Fatalf("toggle from %q: %v", saved, err)
	}
	if back != kanban.StatusNew {
		t.Errorf("new → %q → %q, want round-trip to new", saved, back)
	}
}

func TestToggleSaveTarget_PipelineStatesRejected(t *testing.T) {
	for _, from := range []kanban.Status{
		kanban.StatusApplied,
		kanban.StatusAssessment,
		kanban.StatusInterview,
		kanban.StatusOffer,
	} {
		if _, err := kanban.ToggleSaveTarget(from); err == nil {
			t.Errorf("ToggleSaveTarget(%q) expected error, got nil", from)
		}
	}
}

// ── CanHardDelete: permanent removal only from archived ───────────────────

func TestCanHardDelete(t *testing.T) {
	if !kanban.CanHardDelete(kanban.StatusArchived) {
		t.Error("CanHardDelete(archived) should be true")
	}
	for _, s := range []kanban.Status{
		kanban.StatusNew, "", kanban.StatusSaved, kanban.StatusApplied,
		kanban.StatusAssessment, kanban.StatusInterview, kanban.StatusOffer,
	} {
		if kanban.CanHardDelete(s) {
			t.Errorf("CanHardDelete(%q) should be false", s)
		}
	}
}

// ── Optional enums ─────────────────────────────────────────────────────────

func TestParseSeniority(t *testing.T) {
	for _, s := range []string{"", "Mid", "Senior", "Lead"} {
		if _, err := kanban.ParseSeniority(s); err != nil {
			t.Errorf("ParseSeniority(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := kanban.ParseSeniority("Principal"); err == nil {
		t.Error("ParseSeniority(\"Principal\") expected error, got nil")
	}
}

func TestParseInterviewFormat(t *testing.T) {
	for _, s := range []string{"", "video", "phone"} {
		if _, err := kanban.ParseInterviewFormat(s); err != nil {
			t.Errorf("ParseInterviewFormat(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := kanban.ParseInterviewFormat("onsite"); err == nil {
		t.Error("ParseInterviewFormat(\"onsite\") expected error, got nil")
	}
}

// ── High value threshold ───────────────────────────────────────────────────

func TestIsHighValue(t *testing.T) {
	cases := []struct {
		name string
		job  kanban.Job
		want bool
	}{
		{"at threshold", kanban.Job{Analysis: &kanban.JobAnalysis{Score: 80}}, true},
		{"above", kanban.Job{Analysis: &kanban.JobAnalysis{Score: 100}}, true},
		{"below", kanban.Job{Analysis: &kanban.JobAnalysis{Score: 79}}, false},
		{"no analysis", kanban.Job{}, false},
	}
	for _, c := range cases {
		if got := c.job.IsHighValue(); got != c.want {
			t.Errorf("%s: IsHighValue() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFailedAnalysis(t *testing.T) {
	a := kanban.FailedAnalysis()
	if a.Score != 0 {
		t.Errorf("failed analysis score = %d, want 0", a.Score)
	}
	if a.Verdict != "Analysis failed" {
		t.Errorf("failed analysis verdict = %q", a.Verdict)
	}
	if a.MatchedKeywords == nil || len(a.MatchedKeywords) != 0 {
		t.Errorf("failed analysis keywords = %#v, want empty non-nil list", a.MatchedKeywords)
	}
}
