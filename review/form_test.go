package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func criterion(title string) Criterion {
	return Criterion{ID: uuid.New(), Title: title, Required: true, ScaleMin: 1, ScaleMax: 5, Weight: 1.0}
}

func defaultCriteria() []Criterion {
	out := make([]Criterion, 0, len(DefaultCriterionTitles))
	for _, title := range DefaultCriterionTitles {
		out = append(out, criterion(title))
	}
	return out
}

func titles(cs []Criterion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

func TestFilterCriteriaDraftOnlyDefaults(t *testing.T) {
	all := append(defaultCriteria(), criterion("Teamwork"))

	got := FilterCriteria(PhaseDraft, all, []string{"Teamwork"})

	require.Len(t, got, 4)
	assert.NotContains(t, titles(got), "Teamwork",
		"draft form must never contain an instructor-authored criterion")
}

func TestFilterCriteriaStartedIncludesAuthored(t *testing.T) {
	all := append(defaultCriteria(), criterion("Teamwork"), criterion("Leadership"))

	// Leadership has a rating row but no surviving authored record; it must
	// be filtered out.
	got := FilterCriteria(PhaseStarted, all, []string{"Teamwork"})

	require.Len(t, got, 5)
	assert.Contains(t, titles(got), "Teamwork")
	assert.NotContains(t, titles(got), "Leadership")
}

func TestFilterCriteriaPublishedFiltersLikeStarted(t *testing.T) {
	all := append(defaultCriteria(), criterion("Teamwork"))

	started := FilterCriteria(PhaseStarted, all, []string{"Teamwork"})
	published := FilterCriteria(PhasePublished, all, []string{"Teamwork"})

	assert.Equal(t, titles(started), titles(published))
}

func TestFilterCriteriaMatchesCaseInsensitively(t *testing.T) {
	all := []Criterion{criterion("contribution"), criterion("QUALITY OF WORK"), criterion("teamwork")}

	draft := FilterCriteria(PhaseDraft, all, nil)
	require.Len(t, draft, 2)

	started := FilterCriteria(PhaseStarted, all, []string{"TeamWork"})
	assert.Len(t, started, 3)
}

func TestFilterCriteriaEmptyInput(t *testing.T) {
	got := FilterCriteria(PhaseStarted, nil, []string{"Teamwork"})
	assert.Empty(t, got)
}
