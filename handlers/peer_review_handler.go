package handlers

import (
	"time"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmitReviewsRequest struct {
	Reviews []review.ReviewInput `json:"reviews" validate:"required,min=1"`
}

// GetReviewForm returns the phase-filtered criterion set plus the caller's
// eligible teammates.
func GetReviewForm(c *fiber.Ctx) error {
	caller := currentCaller(c)

	phase, err := currentPhase(database.DB)
	if err != nil {
		return domainError(c, err)
	}
	criteria, err := formCriteria(database.DB, phase)
	if err != nil {
		return domainError(c, err)
	}
	teammates, err := teammatesOf(database.DB, caller.ID)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"criteria":  viewCriteria(criteria),
		"teammates": teammates,
		"phase":     phase,
	})
}

// SubmitPeerReviews validates and writes a whole submission batch. The
// phase read, the validation, and the writes share one transaction so a
// concurrent lifecycle change cannot split the batch. Validation failures
// come back as an itemized 400; nothing is written unless the entire batch
// is clean.
func SubmitPeerReviews(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req SubmitReviewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		phase, err := currentPhase(tx)
		if err != nil {
			return err
		}
		deadlineRow, err := currentDeadline(tx)
		if err != nil {
			return err
		}
		var deadline *time.Time
		if deadlineRow != nil {
			deadline = deadlineRow.Deadline
		}
		if err := review.AcceptsSubmissions(phase, deadline, time.Now()); err != nil {
			return err
		}

		criteria, err := formCriteria(tx, phase)
		if err != nil {
			return err
		}
		peers, err := teammatesOf(tx, caller.ID)
		if err != nil {
			return err
		}
		if errs := review.ValidateSubmission(caller.ID, req.Reviews, criteria, peers); len(errs) > 0 {
			return errs
		}

		round := review.RoundFor(phase)
		now := time.Now()
		for _, r := range req.Reviews {
			for _, a := range r.Answers {
				sub := models.PeerReviewSubmission{
					ReviewerID:  caller.ID,
					RevieweeID:  r.TeammateID,
					CriterionID: a.CriterionID,
					Rating:      a.Rating,
					Round:       round,
					SubmittedAt: now,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "reviewer_id"},
						{Name: "reviewee_id"},
						{Name: "criterion_id"},
						{Name: "round"},
					},
					DoUpdates: clause.AssignmentColumns([]string{"rating", "submitted_at"}),
				}).Create(&sub).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var verrs review.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": verrs})
		}
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

func asValidationErrors(err error, target *review.ValidationErrors) bool {
	verrs, ok := err.(review.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// MySubmissions lists everything the caller has submitted, optionally
// filtered to one round. Available in every phase; students may always see
// their own outgoing ratings.
func MySubmissions(c *fiber.Ctx) error {
	caller := currentCaller(c)

	query := database.DB.Where("reviewer_id = ?", caller.ID)
	if round := c.Query("round"); round != "" {
		query = query.Where("round = ?", round)
	}

	var rows []models.PeerReviewSubmission
	if err := query.Order("submitted_at DESC").Find(&rows).Error; err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"submissions": rows})
}
