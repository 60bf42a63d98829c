package review

import (
	"fmt"

	"github.com/google/uuid"
)

// Answer is one rating for one criterion.
type Answer struct {
	CriterionID uuid.UUID `json:"criterion_id"`
	Rating      int       `json:"rating"`
}

// ReviewInput is one teammate's worth of answers inside a submission batch.
type ReviewInput struct {
	TeammateID uuid.UUID `json:"teammate_id"`
	Answers    []Answer  `json:"answers"`
}

// ValidateSubmission checks a whole batch against the phase-filtered
// criterion set and the reviewer's eligible peers, accumulating every
// failure. An empty result means the batch may be written.
//
// Rules, per review entry:
//   - the teammate must be an eligible peer (a student other than the
//     reviewer),
//   - every answered criterion must belong to the filtered form,
//   - each rating must sit inside the criterion's scale (both bounds
//     inclusive),
//   - every required criterion must be answered; each missing one yields
//     its own error naming the criterion.
func ValidateSubmission(reviewerID uuid.UUID, reviews []ReviewInput, criteria []Criterion, peers []Teammate) ValidationErrors {
	byID := make(map[uuid.UUID]Criterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}
	eligible := make(map[uuid.UUID]bool, len(peers))
	for _, p := range peers {
		eligible[p.ID] = true
	}

	var errs ValidationErrors
	for _, r := range reviews {
		if r.TeammateID == reviewerID {
			errs = append(errs, ValidationError{
				TeammateID: r.TeammateID,
				Message:    "You cannot review yourself",
			})
			continue
		}
		if !eligible[r.TeammateID] {
			errs = append(errs, ValidationError{
				TeammateID: r.TeammateID,
				Message:    "Teammate is not eligible for review",
			})
			continue
		}

		answered := make(map[uuid.UUID]bool, len(r.Answers))
		for _, a := range r.Answers {
			c, ok := byID[a.CriterionID]
			if !ok {
				id := a.CriterionID
				errs = append(errs, ValidationError{
					TeammateID:  r.TeammateID,
					CriterionID: &id,
					Message:     "Criterion is not part of the current review form",
				})
				continue
			}
			answered[a.CriterionID] = true
			if a.Rating < c.ScaleMin || a.Rating > c.ScaleMax {
				id := a.CriterionID
				errs = append(errs, ValidationError{
					TeammateID:     r.TeammateID,
					CriterionID:    &id,
					CriterionTitle: c.Title,
					Message:        fmt.Sprintf("Rating must be between %d and %d", c.ScaleMin, c.ScaleMax),
				})
			}
		}

		for _, c := range criteria {
			if c.Required && !answered[c.ID] {
				id := c.ID
				errs = append(errs, ValidationError{
					TeammateID:     r.TeammateID,
					CriterionID:    &id,
					CriterionTitle: c.Title,
					Message:        "Rating is required",
				})
			}
		}
	}
	return errs
}
