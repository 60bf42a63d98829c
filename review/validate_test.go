package review

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersFor(criteria []Criterion, rating int) []Answer {
	out := make([]Answer, len(criteria))
	for i, c := range criteria {
		out[i] = Answer{CriterionID: c.ID, Rating: rating}
	}
	return out
}

func TestValidateSubmissionAcceptsBoundaryRatings(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	peer := Teammate{ID: uuid.New(), Username: "student2"}

	for _, rating := range []int{1, 5} {
		reviews := []ReviewInput{{TeammateID: peer.ID, Answers: answersFor(criteria, rating)}}
		errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peer})
		assert.Empty(t, errs, fmt.Sprintf("rating %d", rating))
	}
}

func TestValidateSubmissionRejectsOutOfRangeRatings(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	peer := Teammate{ID: uuid.New(), Username: "student2"}

	for _, rating := range []int{0, 6, 999} {
		answers := answersFor(criteria, 3)
		answers[0].Rating = rating
		reviews := []ReviewInput{{TeammateID: peer.ID, Answers: answers}}

		errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peer})
		require.Len(t, errs, 1, fmt.Sprintf("rating %d", rating))
		assert.Equal(t, "Rating must be between 1 and 5", errs[0].Message)
		assert.Equal(t, criteria[0].ID, *errs[0].CriterionID)
	}
}

func TestValidateSubmissionMissingRequiredCriteria(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	peer := Teammate{ID: uuid.New(), Username: "student2"}

	// answer only the first criterion: one error per missing required one
	reviews := []ReviewInput{{
		TeammateID: peer.ID,
		Answers:    []Answer{{CriterionID: criteria[0].ID, Rating: 5}},
	}}

	errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peer})
	require.Len(t, errs, 3)
	missing := map[string]bool{}
	for _, e := range errs {
		assert.Equal(t, "Rating is required", e.Message)
		missing[e.CriterionTitle] = true
	}
	assert.Equal(t, map[string]bool{
		"Communication":   true,
		"Quality of Work": true,
		"Reliability":     true,
	}, missing)
}

func TestValidateSubmissionOptionalCriteriaMayBeSkipped(t *testing.T) {
	criteria := defaultCriteria()
	criteria[3].Required = false
	reviewer := uuid.New()
	peer := Teammate{ID: uuid.New(), Username: "student2"}

	reviews := []ReviewInput{{TeammateID: peer.ID, Answers: answersFor(criteria[:3], 4)}}
	errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peer})
	assert.Empty(t, errs)
}

func TestValidateSubmissionRejectsSelfReview(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()

	reviews := []ReviewInput{{TeammateID: reviewer, Answers: answersFor(criteria, 3)}}
	errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{{ID: reviewer}})
	require.Len(t, errs, 1)
	assert.Equal(t, "You cannot review yourself", errs[0].Message)
}

func TestValidateSubmissionRejectsIneligibleTeammate(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	stranger := uuid.New()

	reviews := []ReviewInput{{TeammateID: stranger, Answers: answersFor(criteria, 3)}}
	errs := ValidateSubmission(reviewer, reviews, criteria, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "Teammate is not eligible for review", errs[0].Message)
}

func TestValidateSubmissionRejectsUnknownCriterion(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	peer := Teammate{ID: uuid.New(), Username: "student2"}
	rogue := uuid.New()

	answers := append(answersFor(criteria, 3), Answer{CriterionID: rogue, Rating: 3})
	reviews := []ReviewInput{{TeammateID: peer.ID, Answers: answers}}

	errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peer})
	require.Len(t, errs, 1)
	assert.Equal(t, "Criterion is not part of the current review form", errs[0].Message)
	assert.Equal(t, rogue, *errs[0].CriterionID)
}

func TestValidateSubmissionAccumulatesAcrossBatch(t *testing.T) {
	criteria := defaultCriteria()
	reviewer := uuid.New()
	peerA := Teammate{ID: uuid.New(), Username: "a"}
	peerB := Teammate{ID: uuid.New(), Username: "b"}

	badAnswers := answersFor(criteria, 3)
	badAnswers[0].Rating = 9

	reviews := []ReviewInput{
		{TeammateID: peerA.ID, Answers: badAnswers},
		{TeammateID: peerB.ID, Answers: []Answer{{CriterionID: criteria[0].ID, Rating: 2}}},
	}

	errs := ValidateSubmission(reviewer, reviews, criteria, []Teammate{peerA, peerB})
	// one range error for peerA plus three missing-required errors for peerB
	assert.Len(t, errs, 4)
}
