package kanban

// Job is a tracked posting: identity, editable fields, pipeline status and
// the optional AI analysis. JSON field names are the wire shape served to
// the dashboard clients.
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	URL             string          `json:"url"`
	Summary         string          `json:"summary"`
	Source          string          `json:"source"`
	Status          Status          `json:"status"`
	PostedDate      string          `json:"postedDate"`
	ScoutedAt       int64           `json:"scoutedAt"`
	AppliedDate     string          `json:"appliedDate,omitempty"`
	SeniorityScore  Seniority       `json:"seniorityScore,omitempty"`
	InterviewDate   *int64          `json:"interviewDate,omitempty"`
	InterviewFormat InterviewFormat `json:"interviewFormat,omitempty"`
	StageNotes      string          `json:"stageNotes,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TailoredCV      string          `json:"tailoredCv,omitempty"`
	Analysis        *JobAnalysis    `json:"analysis,omitempty"`
}

// ManualEntryURL is the sentinel stored when a manually added job has no
// source link. It never participates in URL-based duplicate matching.
const ManualEntryURL = "Manual Entry"

// JobAnalysis is the LLM scoring attached to a job. It is written as a
// whole document or not at all, never partially.
type JobAnalysis struct {
	Score           int      `json:"score"`
	Verdict         string   `json:"verdict"`
	Strategy        string   `json:"strategy,omitempty"`
	IsHighValue     bool     `json:"isHighValue"`
	IsCommuteRisk   bool     `json:"isCommuteRisk"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Industry        string   `json:"industry,omitempty"`
	WorkPattern     string   `json:"workPattern,omitempty"`
}

// HighValueThreshold is the analysis score at or above which a job counts
// as high value.
const HighValueThreshold = 80

// IsHighValue reports whether the job's analysis score clears the
// high-value threshold. Jobs without analysis are never high value.
func (j *Job) IsHighValue() bool {
	return j.Analysis != nil && j.Analysis.Score >= HighValueThreshold
}

// FailedAnalysis is the safe placeholder stored when analysis could not be
// produced (parse failure, exhausted retries). It keeps the dashboard
// rendering instead of blocking on the error.
func FailedAnalysis() *JobAnalysis {
	return &JobAnalysis{
		Score:           0,
		Verdict:         "Analysis failed",
		MatchedKeywords: []string{},
	}
}

// JobPatch carries a partial user edit. Nil pointers leave the stored value
// untouched.
type JobPatch struct {
	Title           *string `json:"title,omitempty"`
	Company         *string `json:"company,omitempty"`
	Location        *string `json:"location,omitempty"`
	Summary         *string `json:"summary,omitempty"`
	Status          *string `json:"status,omitempty"`
	PostedDate      *string `json:"postedDate,omitempty"`
	SeniorityScore  *string `json:"seniorityScore,omitempty"`
	InterviewDate   *int64  `json:"interviewDate,omitempty"`
	InterviewFormat *string `json:"interviewFormat,omitempty"`
	StageNotes      *string `json:"stageNotes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
