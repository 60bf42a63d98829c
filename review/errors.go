package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvalidPhaseError reports a status value that is not one of the canonical
// phases (after legacy aliasing).
type InvalidPhaseError struct {
	Value string
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("invalid review status %q: must be 'draft', 'started', or 'published'", e.Value)
}

// PhaseTransitionError reports an attempted transition that is not legal
// from the current phase.
type PhaseTransitionError struct {
	From Phase
	To   Phase
}

func (e *PhaseTransitionError) Error() string {
	return fmt.Sprintf("cannot move review from %q to %q", e.From, e.To)
}

// CriterionStateError reports a criterion mutation outside its allowed
// phase window. It names the current and the required state.
type CriterionStateError struct {
	Current  Phase
	Required Phase
	Action   string
}

func (e *CriterionStateError) Error() string {
	if e.Action == "delete" {
		return fmt.Sprintf("criteria cannot be deleted while the review is %q", e.Current)
	}
	return fmt.Sprintf("criteria can only be %sd while the review is %q (current state: %q)", e.Action, e.Required, e.Current)
}

// SubmissionsClosedError reports a submission rejected because the deadline
// has passed or results have been published.
type SubmissionsClosedError struct {
	Phase    Phase
	Deadline *time.Time
}

func (e *SubmissionsClosedError) Error() string {
	return "Submissions are closed"
}

// NotPublishedError reports a result or report request made before
// publication by a caller without instructor privileges.
type NotPublishedError struct{}

func (e *NotPublishedError) Error() string {
	return "Results have not been published yet"
}

// ValidationError is one itemized failure from a submission batch. A batch
// accumulates every failure instead of stopping at the first one.
type ValidationError struct {
	TeammateID     uuid.UUID  `json:"teammate_id"`
	CriterionID    *uuid.UUID `json:"criterion_id,omitempty"`
	CriterionTitle string     `json:"criterion_title,omitempty"`
	Message        string     `json:"message"`
}

// ValidationErrors is the accumulated list for a whole submission batch.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("submission failed validation with %d error(s)", len(v))
}
