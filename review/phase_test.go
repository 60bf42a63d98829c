package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	cases := map[string]Phase{
		"draft":     PhaseDraft,
		"started":   PhaseStarted,
		"published": PhasePublished,
		"round1":    PhaseDraft,
		"round2":    PhaseStarted,
	}
	for in, want := range cases {
		got, err := ParsePhase(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParsePhaseRejectsUnknownValues(t *testing.T) {
	for _, in := range []string{"", "round3", "DRAFT", "closed"} {
		_, err := ParsePhase(in)
		require.Error(t, err, in)
		var invalid *InvalidPhaseError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, in, invalid.Value)
	}
}

func TestNextRoundOnlyFromDraft(t *testing.T) {
	next, err := NextRound(PhaseDraft)
	require.NoError(t, err)
	assert.Equal(t, PhaseStarted, next)

	for _, p := range []Phase{PhaseStarted, PhasePublished} {
		_, err := NextRound(p)
		var te *PhaseTransitionError
		require.ErrorAs(t, err, &te, string(p))
		assert.Equal(t, p, te.From)
	}
}

func TestRoundFor(t *testing.T) {
	assert.Equal(t, RoundOne, RoundFor(PhaseDraft))
	assert.Equal(t, RoundTwo, RoundFor(PhaseStarted))
	assert.Equal(t, RoundTwo, RoundFor(PhasePublished))
}

func TestCriterionGates(t *testing.T) {
	assert.Error(t, CanCreateCriterion(PhaseDraft))
	assert.NoError(t, CanCreateCriterion(PhaseStarted))
	assert.Error(t, CanCreateCriterion(PhasePublished))

	assert.Error(t, CanUpdateCriterion(PhaseDraft))
	assert.NoError(t, CanUpdateCriterion(PhaseStarted))
	assert.Error(t, CanUpdateCriterion(PhasePublished))

	assert.NoError(t, CanDeleteCriterion(PhaseDraft))
	assert.NoError(t, CanDeleteCriterion(PhaseStarted))
	assert.Error(t, CanDeleteCriterion(PhasePublished))
}

func TestCriterionGateNamesStates(t *testing.T) {
	err := CanCreateCriterion(PhaseDraft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"started"`)
	assert.Contains(t, err.Error(), `"draft"`)
}

func TestSubmissionsOpen(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, SubmissionsOpen(nil, now))
	assert.True(t, SubmissionsOpen(&future, now))
	assert.False(t, SubmissionsOpen(&past, now))
	assert.False(t, SubmissionsOpen(&now, now), "deadline instant itself is closed")
}

func TestAcceptsSubmissions(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.NoError(t, AcceptsSubmissions(PhaseDraft, nil, now))
	assert.NoError(t, AcceptsSubmissions(PhaseStarted, &future, now))

	// published rejects regardless of deadline state
	assert.Error(t, AcceptsSubmissions(PhasePublished, nil, now))
	assert.Error(t, AcceptsSubmissions(PhasePublished, &future, now))

	err := AcceptsSubmissions(PhaseStarted, &past, now)
	var closed *SubmissionsClosedError
	require.ErrorAs(t, err, &closed)
	assert.Equal(t, "Submissions are closed", closed.Error())
}
