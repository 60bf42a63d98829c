package review

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Submission is one persisted rating joined with its criterion metadata and
// the reviewer's username. The aggregation below is a pure reduction over a
// slice of these; it never touches storage.
type Submission struct {
	ReviewerID       uuid.UUID
	ReviewerUsername string
	RevieweeID       uuid.UUID
	CriterionID      uuid.UUID
	CriterionTitle   string
	CriterionWeight  float64
	ScaleMin         int
	ScaleMax         int
	Rating           int
	SubmittedAt      time.Time
}

// CriterionScore is the per-criterion average over every review a student
// received on that criterion.
type CriterionScore struct {
	CriterionID    uuid.UUID `json:"criterion_id"`
	CriterionTitle string    `json:"criterion_title"`
	Weight         float64   `json:"weight"`
	AverageScore   float64   `json:"average_score"`
	ReviewCount    int       `json:"review_count"`
}

// Report is a student's aggregate view. OverallScore is nil when the
// student has no reviews (or the criteria carry zero total weight); absent
// data is never reported as a zero score.
type Report struct {
	StudentID       uuid.UUID        `json:"student_id"`
	StudentUsername string           `json:"student_username"`
	OverallScore    *float64         `json:"overall_score"`
	CriterionScores []CriterionScore `json:"criterion_scores"`
	TotalReviews    int              `json:"total_reviews"`
	UniqueReviewers int              `json:"unique_reviewers"`
}

// RatingLine is one criterion rating inside a single reviewer's breakdown.
type RatingLine struct {
	CriterionID     uuid.UUID `json:"criterion_id"`
	CriterionTitle  string    `json:"criterion_title"`
	CriterionWeight float64   `json:"criterion_weight"`
	Rating          int       `json:"rating"`
	ScaleMin        int       `json:"scale_min"`
	ScaleMax        int       `json:"scale_max"`
}

// ReviewerBreakdown itemizes everything one reviewer submitted for the
// student, with a weighted total restricted to that reviewer's own ratings.
type ReviewerBreakdown struct {
	ReviewerID       uuid.UUID    `json:"reviewer_id"`
	ReviewerUsername string       `json:"reviewer_username"`
	SubmittedAt      time.Time    `json:"submitted_at"`
	Ratings          []RatingLine `json:"ratings"`
	TotalScore       float64      `json:"total_score"`
}

// Round2 rounds to two decimal places, half away from zero. Ratings are
// non-negative so this is round-half-up; the rule is fixed because callers
// assert exact values.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// weightedAverage computes Σ(value·weight)/Σ(weight), reporting false when
// the total weight is zero so the caller can distinguish "no data" from 0.
func weightedAverage(values, weights []float64) (float64, bool) {
	var sum, totalWeight float64
	for i, v := range values {
		sum += v * weights[i]
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		return 0, false
	}
	return Round2(sum / totalWeight), true
}

// BuildReport reduces every submission a student received into per-criterion
// averages and a weighted overall score.
func BuildReport(studentID uuid.UUID, username string, subs []Submission) Report {
	report := Report{
		StudentID:       studentID,
		StudentUsername: username,
		CriterionScores: []CriterionScore{},
		TotalReviews:    len(subs),
	}
	if len(subs) == 0 {
		return report
	}

	type bucket struct {
		title  string
		weight float64
		sum    int
		count  int
	}
	byCriterion := make(map[uuid.UUID]*bucket)
	order := []uuid.UUID{}
	reviewers := make(map[uuid.UUID]bool)

	for _, s := range subs {
		reviewers[s.ReviewerID] = true
		b, ok := byCriterion[s.CriterionID]
		if !ok {
			b = &bucket{title: s.CriterionTitle, weight: s.CriterionWeight}
			byCriterion[s.CriterionID] = b
			order = append(order, s.CriterionID)
		}
		b.sum += s.Rating
		b.count++
	}
	report.UniqueReviewers = len(reviewers)

	averages := make([]float64, 0, len(order))
	weights := make([]float64, 0, len(order))
	for _, id := range order {
		b := byCriterion[id]
		avg := Round2(float64(b.sum) / float64(b.count))
		report.CriterionScores = append(report.CriterionScores, CriterionScore{
			CriterionID:    id,
			CriterionTitle: b.title,
			Weight:         b.weight,
			AverageScore:   avg,
			ReviewCount:    b.count,
		})
		averages = append(averages, avg)
		weights = append(weights, b.weight)
	}
	sort.Slice(report.CriterionScores, func(i, j int) bool {
		return report.CriterionScores[i].CriterionTitle < report.CriterionScores[j].CriterionTitle
	})

	if overall, ok := weightedAverage(averages, weights); ok {
		report.OverallScore = &overall
	}
	return report
}

// GroupByReviewer produces the itemized per-reviewer view of a student's
// received reviews, most recent submission first.
func GroupByReviewer(subs []Submission) []ReviewerBreakdown {
	byReviewer := make(map[uuid.UUID]*ReviewerBreakdown)
	order := []uuid.UUID{}

	for _, s := range subs {
		b, ok := byReviewer[s.ReviewerID]
		if !ok {
			b = &ReviewerBreakdown{
				ReviewerID:       s.ReviewerID,
				ReviewerUsername: s.ReviewerUsername,
				SubmittedAt:      s.SubmittedAt,
			}
			byReviewer[s.ReviewerID] = b
			order = append(order, s.ReviewerID)
		}
		if s.SubmittedAt.After(b.SubmittedAt) {
			b.SubmittedAt = s.SubmittedAt
		}
		b.Ratings = append(b.Ratings, RatingLine{
			CriterionID:     s.CriterionID,
			CriterionTitle:  s.CriterionTitle,
			CriterionWeight: s.CriterionWeight,
			Rating:          s.Rating,
			ScaleMin:        s.ScaleMin,
			ScaleMax:        s.ScaleMax,
		})
	}

	out := make([]ReviewerBreakdown, 0, len(order))
	for _, id := range order {
		b := byReviewer[id]
		values := make([]float64, len(b.Ratings))
		weights := make([]float64, len(b.Ratings))
		for i, r := range b.Ratings {
			values[i] = float64(r.Rating)
			weights[i] = r.CriterionWeight
		}
		if total, ok := weightedAverage(values, weights); ok {
			b.TotalScore = total
		}
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}
