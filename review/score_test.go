package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(reviewer, reviewee uuid.UUID, c Criterion, rating int, at time.Time) Submission {
	return Submission{
		ReviewerID:      reviewer,
		RevieweeID:      reviewee,
		CriterionID:     c.ID,
		CriterionTitle:  c.Title,
		CriterionWeight: c.Weight,
		ScaleMin:        c.ScaleMin,
		ScaleMax:        c.ScaleMax,
		Rating:          rating,
		SubmittedAt:     at,
	}
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 2.5, Round2(2.5))
	assert.Equal(t, 1.67, Round2(5.0/3.0))
	assert.Equal(t, 4.46, Round2(4.455))
	assert.Equal(t, 0.0, Round2(0))
}

func TestBuildReportWeightedOverall(t *testing.T) {
	a := criterion("Contribution")
	a.Weight = 1.0
	b := criterion("Communication")
	b.Weight = 3.0

	reviewer := uuid.New()
	student := uuid.New()
	now := time.Now()

	report := BuildReport(student, "student1", []Submission{
		sub(reviewer, student, a, 4, now),
		sub(reviewer, student, b, 2, now),
	})

	// (4*1 + 2*3) / (1+3) = 2.5
	require.NotNil(t, report.OverallScore)
	assert.Equal(t, 2.5, *report.OverallScore)
	assert.Equal(t, 2, report.TotalReviews)
	assert.Equal(t, 1, report.UniqueReviewers)
}

func TestBuildReportPerCriterionAverages(t *testing.T) {
	c := criterion("Contribution")
	student := uuid.New()
	now := time.Now()

	report := BuildReport(student, "student1", []Submission{
		sub(uuid.New(), student, c, 4, now),
		sub(uuid.New(), student, c, 5, now),
		sub(uuid.New(), student, c, 5, now),
	})

	require.Len(t, report.CriterionScores, 1)
	cs := report.CriterionScores[0]
	assert.Equal(t, c.ID, cs.CriterionID)
	assert.Equal(t, "Contribution", cs.CriterionTitle)
	assert.Equal(t, 4.67, cs.AverageScore)
	assert.Equal(t, 3, cs.ReviewCount)
	assert.Equal(t, 3, report.UniqueReviewers)
}

func TestBuildReportNoReviews(t *testing.T) {
	report := BuildReport(uuid.New(), "student1", nil)

	assert.Nil(t, report.OverallScore)
	assert.Zero(t, report.TotalReviews)
	assert.Zero(t, report.UniqueReviewers)
	assert.Empty(t, report.CriterionScores)
}

func TestBuildReportZeroWeightIsNotZeroScore(t *testing.T) {
	c := criterion("Contribution")
	c.Weight = 0
	student := uuid.New()

	report := BuildReport(student, "student1", []Submission{
		sub(uuid.New(), student, c, 5, time.Now()),
	})

	assert.Nil(t, report.OverallScore, "zero total weight must read as no data, not 0")
	assert.Equal(t, 1, report.TotalReviews)
}

func TestBuildReportCriterionScoresSortedByTitle(t *testing.T) {
	student := uuid.New()
	now := time.Now()
	r := uuid.New()

	report := BuildReport(student, "student1", []Submission{
		sub(r, student, criterion("Reliability"), 3, now),
		sub(r, student, criterion("Contribution"), 4, now),
		sub(r, student, criterion("Quality of Work"), 5, now),
	})

	got := make([]string, len(report.CriterionScores))
	for i, cs := range report.CriterionScores {
		got[i] = cs.CriterionTitle
	}
	assert.Equal(t, []string{"Contribution", "Quality of Work", "Reliability"}, got)
}

func TestGroupByReviewerTotalsAndOrder(t *testing.T) {
	a := criterion("Contribution")
	a.Weight = 1.0
	b := criterion("Communication")
	b.Weight = 3.0

	student := uuid.New()
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)

	first := uuid.New()
	second := uuid.New()

	out := GroupByReviewer([]Submission{
		{ReviewerID: first, ReviewerUsername: "alice", RevieweeID: student,
			CriterionID: a.ID, CriterionTitle: a.Title, CriterionWeight: a.Weight,
			ScaleMin: 1, ScaleMax: 5, Rating: 4, SubmittedAt: early},
		{ReviewerID: first, ReviewerUsername: "alice", RevieweeID: student,
			CriterionID: b.ID, CriterionTitle: b.Title, CriterionWeight: b.Weight,
			ScaleMin: 1, ScaleMax: 5, Rating: 2, SubmittedAt: early},
		{ReviewerID: second, ReviewerUsername: "bob", RevieweeID: student,
			CriterionID: a.ID, CriterionTitle: a.Title, CriterionWeight: a.Weight,
			ScaleMin: 1, ScaleMax: 5, Rating: 5, SubmittedAt: late},
	})

	require.Len(t, out, 2)

	// most recent submission first
	assert.Equal(t, "bob", out[0].ReviewerUsername)
	assert.Equal(t, 5.0, out[0].TotalScore)

	assert.Equal(t, "alice", out[1].ReviewerUsername)
	assert.Equal(t, 2.5, out[1].TotalScore)
	assert.Len(t, out[1].Ratings, 2)
}

func TestGroupByReviewerEmpty(t *testing.T) {
	assert.Empty(t, GroupByReviewer(nil))
}

func TestGroupByReviewerUsesLatestTimestampPerReviewer(t *testing.T) {
	c := criterion("Contribution")
	student := uuid.New()
	r := uuid.New()
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	out := GroupByReviewer([]Submission{
		sub(r, student, c, 3, late),
		sub(r, student, criterion("Reliability"), 4, early),
	})

	require.Len(t, out, 1)
	assert.Equal(t, late, out[0].SubmittedAt)
}
