package handlers

import (
	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// receivedSubmissions loads every rating a student received, joined with the
// reviewer's username and the criterion metadata the aggregation needs.
func receivedSubmissions(tx *gorm.DB, studentID uuid.UUID) ([]review.Submission, error) {
	var subs []review.Submission
	err := tx.Table("peer_review_submissions").
		Select(`peer_review_submissions.reviewer_id,
			users.username AS reviewer_username,
			peer_review_submissions.reviewee_id,
			peer_review_submissions.criterion_id,
			rating_criteria.title AS criterion_title,
			rating_criteria.weight AS criterion_weight,
			rating_criteria.scale_min,
			rating_criteria.scale_max,
			peer_review_submissions.rating,
			peer_review_submissions.submitted_at`).
		Joins("JOIN users ON users.id = peer_review_submissions.reviewer_id").
		Joins("JOIN rating_criteria ON rating_criteria.id = peer_review_submissions.criterion_id").
		Where("peer_review_submissions.reviewee_id = ?", studentID).
		Order("peer_review_submissions.submitted_at").
		Scan(&subs).Error
	return subs, err
}

// requirePublished enforces the publication gate for students. Instructors
// see results at any time.
func requirePublished(tx *gorm.DB, caller review.Caller) error {
	if caller.IsInstructor() {
		return nil
	}
	published, err := resultsPublished(tx)
	if err != nil {
		return err
	}
	if !published {
		return &review.NotPublishedError{}
	}
	return nil
}

// GetResults returns the itemized per-reviewer view. A student sees their
// own results once published; an instructor passes ?student_id= to inspect
// any student at any time.
func GetResults(c *fiber.Ctx) error {
	caller := currentCaller(c)

	if err := requirePublished(database.DB, caller); err != nil {
		return domainError(c, err)
	}

	studentID := caller.ID
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid student_id"})
		}
		studentID = parsed
	} else if caller.IsInstructor() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "student_id query parameter is required"})
	}
	if !caller.MayViewResultsOf(studentID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Forbidden: you may only view your own results"})
	}

	subs, err := receivedSubmissions(database.DB, studentID)
	if err != nil {
		return domainError(c, err)
	}

	response := fiber.Map{
		"student_id": studentID,
		"reviews":    review.GroupByReviewer(subs),
	}
	if len(subs) == 0 {
		response["message"] = "No reviews received yet"
	}
	return c.JSON(response)
}

// GetAllResults returns aggregate reports for every student. Gated on
// publication for student callers like the individual view.
func GetAllResults(c *fiber.Ctx) error {
	caller := currentCaller(c)

	if err := requirePublished(database.DB, caller); err != nil {
		return domainError(c, err)
	}

	var students []models.User
	err := database.DB.Where("role = ?", models.RoleStudent).
		Order("username").Find(&students).Error
	if err != nil {
		return domainError(c, err)
	}

	reports := make([]review.Report, 0, len(students))
	for _, s := range students {
		subs, err := receivedSubmissions(database.DB, s.ID)
		if err != nil {
			return domainError(c, err)
		}
		reports = append(reports, review.BuildReport(s.ID, s.Username, subs))
	}
	return c.JSON(fiber.Map{"reports": reports})
}
