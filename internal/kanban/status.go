// Package kanban defines the job lifecycle state machine and the business
// logic for the tracking pipeline.
//
// Status graph (triage pipeline):
//
//	new ──► saved ──► applied ──► assessment ──► interview ──► offer
//	 ▲        │                                                   │
//	 │        └──────────────── delete ──────────────────────────►│
//	 └─────────────── toggle-save ◄──── archived ◄────────────────┘
//
// Dragging a card or a manual status edit may move a job to any status;
// the constrained paths above are the ones triggered by dedicated actions
// (toggle-save, delete). Hard deletion exists only from archived and needs
// explicit confirmation.
package kanban

import "fmt"

// Status is a job's position in the triage pipeline. The empty string is
// treated as StatusNew everywhere (see NormalizeStatus).
type Status string

const (
	StatusNew        Status = "new"
	StatusSaved      Status = "saved"
	StatusApplied    Status = "applied"
	StatusAssessment Status = "assessment"
	StatusInterview  Status = "interview"
	StatusOffer      Status = "offer"
	StatusArchived   Status = "archived"
)

// AllStatuses lists every valid status in pipeline order.
var AllStatuses = []Status{
	StatusNew, StatusSaved, StatusApplied, StatusAssessment,
	StatusInterview, StatusOffer, StatusArchived,
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values. The empty string parses to StatusNew.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusNew, nil
	}
	st := Status(s)
	switch st {
	case StatusNew, StatusSaved, StatusApplied, StatusAssessment,
		StatusInterview, StatusOffer, StatusArchived:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// NormalizeStatus maps a possibly-absent stored value to its effective
// status: empty means new.
func NormalizeStatus(s Status) Status {
	if s == "" {
		return StatusNew
	}
	return s
}

// Tab is a view grouping over statuses. It is recomputed from Status on
// every read and never stored.
type Tab string

const (
	TabNew      Tab = "new"
	TabSaved    Tab = "saved"
	TabArchived Tab = "archived"
)

// TabFor returns the tab a job with the given status belongs to. The three
// tabs partition the status set exactly.
func TabFor(s Status) Tab {
	switch NormalizeStatus(s) {
	case StatusNew:
		return TabNew
	case StatusArchived:
		return TabArchived
	default:
		// saved, applied, assessment, interview, offer
		return TabSaved
	}
}

// toggleSaveTargets lists the statuses the toggle-save action may act on
// and where each one lands.
var toggleSaveTargets = map[Status]Status{
	StatusNew:      StatusSaved,
	StatusSaved:    StatusNew,
	StatusArchived: StatusNew,
}

// ToggleSaveTarget returns the status a toggle-save action moves a job to.
// Jobs already in the pipeline past saved cannot be toggled.
func ToggleSaveTarget(from Status) (Status, error) {
	to, ok := toggleSaveTargets[NormalizeStatus(from)]
	if !ok {
		return "", &ValidationError{Msg: fmt.Sprintf("cannot toggle-save a job in status %q", from)}
	}
	return to, nil
}

// CanHardDelete reports whether a job may be permanently removed. Only
// archived jobs qualify; everything else soft-deletes to archived.
func CanHardDelete(s Status) bool {
	return NormalizeStatus(s) == StatusArchived
}

// Seniority is the optional seniority bucket assigned by analysis.
type Seniority string

const (
	SeniorityMid    Seniority = "Mid"
	SenioritySenior Seniority = "Senior"
	SeniorityLead   Seniority = "Lead"
)

// ParseSeniority validates a seniority value. Empty is allowed (unset).
func ParseSeniority(s string) (Seniority, error) {
	sn := Seniority(s)
	switch sn {
	case "", SeniorityMid, SenioritySenior, SeniorityLead:
		return sn, nil
	}
	return "", fmt.Errorf("unknown seniority %q", s)
}

// InterviewFormat is how a scheduled interview will be held.
type InterviewFormat string

const (
	InterviewVideo InterviewFormat = "video"
	InterviewPhone InterviewFormat = "phone"
)

// ParseInterviewFormat validates an interview format. Empty is allowed (unset).
func ParseInterviewFormat(s string) (InterviewFormat, error) {
	f := InterviewFormat(s)
	switch f {
	case "", InterviewVideo, InterviewPhone:
		return f, nil
	}
	return "", fmt.Errorf("unknown interview format %q", s)
}
