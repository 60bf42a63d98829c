package review

import "time"

// Phase is the process-wide review lifecycle stage. The lifecycle is linear
// (draft → started → published); unpublishing is the single backward
// transition and returns the phase to started.
type Phase string

const (
	PhaseDraft     Phase = "draft"
	PhaseStarted   Phase = "started"
	PhasePublished Phase = "published"
)

// Round tags partitioning submissions: ratings written while the phase is
// draft belong to round1, ratings written after the next round has started
// belong to round2.
const (
	RoundOne = "round1"
	RoundTwo = "round2"
)

// ParsePhase normalizes a stored or submitted status value. The legacy
// values round1/round2 are accepted and mapped to their canonical phases.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "draft", "started", "published":
		return Phase(s), nil
	case RoundOne:
		return PhaseDraft, nil
	case RoundTwo:
		return PhaseStarted, nil
	}
	return "", &InvalidPhaseError{Value: s}
}

// RoundFor returns the submission round tag for ratings written in the
// given phase.
func RoundFor(p Phase) string {
	if p == PhaseDraft {
		return RoundOne
	}
	return RoundTwo
}

// NextRound validates the start-next-round transition and returns the
// phase it leads to. It is only legal from draft.
func NextRound(current Phase) (Phase, error) {
	if current != PhaseDraft {
		return "", &PhaseTransitionError{From: current, To: PhaseStarted}
	}
	return PhaseStarted, nil
}

// CanCreateCriterion gates instructor criterion authoring. The draft window
// holds only the seeded defaults; new criteria are added once the active
// rating round has started.
func CanCreateCriterion(p Phase) error {
	if p != PhaseStarted {
		return &CriterionStateError{Current: p, Required: PhaseStarted, Action: "create"}
	}
	return nil
}

func CanUpdateCriterion(p Phase) error {
	if p != PhaseStarted {
		return &CriterionStateError{Current: p, Required: PhaseStarted, Action: "update"}
	}
	return nil
}

// CanDeleteCriterion permits deletion in any phase before publication.
func CanDeleteCriterion(p Phase) error {
	if p == PhasePublished {
		return &CriterionStateError{Current: p, Required: PhaseStarted, Action: "delete"}
	}
	return nil
}

// SubmissionsOpen reports whether the deadline allows new submissions.
// A nil deadline means always open. Independent of phase: a submission is
// accepted only when this is true and the phase is not published.
func SubmissionsOpen(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return true
	}
	return now.Before(*deadline)
}

// AcceptsSubmissions combines the phase gate with the deadline gate.
func AcceptsSubmissions(p Phase, deadline *time.Time, now time.Time) error {
	if p == PhasePublished || !SubmissionsOpen(deadline, now) {
		return &SubmissionsClosedError{Phase: p, Deadline: deadline}
	}
	return nil
}
