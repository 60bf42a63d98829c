package review

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultCriterionTitles are the four criteria seeded for round one. The
// rating form in the draft phase contains exactly these.
var DefaultCriterionTitles = []string{
	"Contribution",
	"Communication",
	"Quality of Work",
	"Reliability",
}

// Criterion is the scored form entry the engine works with, decoupled from
// the storage model.
type Criterion struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Required bool      `json:"required"`
	ScaleMin int       `json:"-"`
	ScaleMax int       `json:"-"`
	Weight   float64   `json:"weight"`
}

// Teammate is an eligible review target.
type Teammate struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func isDefaultTitle(title string) bool {
	for _, d := range DefaultCriterionTitles {
		if strings.EqualFold(d, title) {
			return true
		}
	}
	return false
}

// FilterCriteria returns the criterion set visible on the rating form for
// the given phase. Matching is by case-insensitive title: in draft only the
// defaults appear, from started on the instructor-authored names join them.
// The published phase filters like started so reads stay consistent even
// though submissions are closed.
func FilterCriteria(phase Phase, criteria []Criterion, authoredNames []string) []Criterion {
	authored := make(map[string]bool, len(authoredNames))
	for _, n := range authoredNames {
		authored[strings.ToLower(n)] = true
	}

	out := make([]Criterion, 0, len(criteria))
	for _, c := range criteria {
		if isDefaultTitle(c.Title) {
			out = append(out, c)
			continue
		}
		if phase != PhaseDraft && authored[strings.ToLower(c.Title)] {
			out = append(out, c)
		}
	}
	return out
}
