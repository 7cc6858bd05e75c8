package kanban

import "errors"

// ErrNotFound is returned when a job id does not exist in the collection.
var ErrNotFound = errors.New("job not found")

// ErrDuplicate is returned when a manual entry matches an existing job by
// URL or by normalized title+company.
var ErrDuplicate = errors.New("job already tracked")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
