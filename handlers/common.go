package handlers

import (
	"errors"
	"log"

	"github.com/peerevalpro/peer_review/middleware"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func currentCaller(c *fiber.Ctx) review.Caller {
	return middleware.CurrentCaller(c)
}

// currentPhase reads the singleton review-state row and normalizes legacy
// values. Callers pass the transaction they are already in so the phase
// decision and the write it gates share one snapshot.
func currentPhase(tx *gorm.DB) (review.Phase, error) {
	var state models.ReviewState
	if err := tx.First(&state, "id = ?", models.ReviewStateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review.PhaseDraft, nil
		}
		return "", err
	}
	phase, err := review.ParsePhase(state.Status)
	if err != nil {
		// a corrupt row should not take the system down
		log.Printf("🔥 Unrecognized review state %q, treating as draft", state.Status)
		return review.PhaseDraft, nil
	}
	return phase, nil
}

func currentDeadline(tx *gorm.DB) (*models.SubmissionDeadline, error) {
	var row models.SubmissionDeadline
	err := tx.First(&row, "id = ?", models.SubmissionDeadlineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func resultsPublished(tx *gorm.DB) (bool, error) {
	var count int64
	if err := tx.Model(&models.ResultsPublication{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// formCriteria loads the rating criteria and instructor-authored names and
// returns the phase-filtered form set.
func formCriteria(tx *gorm.DB, phase review.Phase) ([]review.Criterion, error) {
	var rows []models.RatingCriterion
	if err := tx.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	var authoredNames []string
	if err := tx.Model(&models.EvaluationCriterion{}).Pluck("name", &authoredNames).Error; err != nil {
		return nil, err
	}

	criteria := make([]review.Criterion, len(rows))
	for i, r := range rows {
		criteria[i] = review.Criterion{
			ID:       r.ID,
			Title:    r.Title,
			Required: r.Required,
			ScaleMin: r.ScaleMin,
			ScaleMax: r.ScaleMax,
			Weight:   r.Weight,
		}
	}
	return review.FilterCriteria(phase, criteria, authoredNames), nil
}

// teammatesOf lists every student except the given one, ordered by username.
func teammatesOf(tx *gorm.DB, studentID uuid.UUID) ([]review.Teammate, error) {
	var users []models.User
	err := tx.Where("role = ? AND id != ?", models.RoleStudent, studentID).
		Order("username").Find(&users).Error
	if err != nil {
		return nil, err
	}
	teammates := make([]review.Teammate, len(users))
	for i, u := range users {
		teammates[i] = review.Teammate{ID: u.ID, Username: u.Username}
	}
	return teammates, nil
}

type criterionView struct {
	ID       uuid.UUID      `json:"id"`
	Title    string         `json:"title"`
	Required bool           `json:"required"`
	Scale    map[string]int `json:"scale"`
	Weight   float64        `json:"weight"`
}

func viewCriteria(criteria []review.Criterion) []criterionView {
	out := make([]criterionView, len(criteria))
	for i, c := range criteria {
		out[i] = criterionView{
			ID:       c.ID,
			Title:    c.Title,
			Required: c.Required,
			Scale:    map[string]int{"min": c.ScaleMin, "max": c.ScaleMax},
			Weight:   c.Weight,
		}
	}
	return out
}

// domainError maps the core error taxonomy onto HTTP responses. Validation
// lists get their own shape in the submit handler; everything else lands
// here.
func domainError(c *fiber.Ctx, err error) error {
	var invalid *review.InvalidPhaseError
	var transition *review.PhaseTransitionError
	var criterionState *review.CriterionStateError
	var closed *review.SubmissionsClosedError
	var notPublished *review.NotPublishedError

	switch {
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": err.Error()})
	case errors.As(err, &criterionState):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": err.Error()})
	case errors.As(err, &closed):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": err.Error()})
	case errors.As(err, &notPublished):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found"})
	}
	log.Printf("🔥 Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
}
