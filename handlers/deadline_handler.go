package handlers

import (
	"time"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
)

type DeadlineRequest struct {
	Deadline string `json:"deadline" validate:"required"`
}

func deadlineResponse(c *fiber.Ctx, deadline *time.Time) error {
	var value interface{}
	if deadline != nil {
		value = deadline.Format(time.RFC3339)
	}
	return c.JSON(fiber.Map{
		"deadline": value,
		"is_open":  review.SubmissionsOpen(deadline, time.Now()),
	})
}

// GetDeadline reports the submission deadline and whether the window is
// still open. Visible to every authenticated user.
func GetDeadline(c *fiber.Ctx) error {
	row, err := currentDeadline(database.DB)
	if err != nil {
		return domainError(c, err)
	}
	if row == nil {
		return deadlineResponse(c, nil)
	}
	return deadlineResponse(c, row.Deadline)
}

func SetDeadline(c *fiber.Ctx) error {
	var req DeadlineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	parsed, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Deadline must be an RFC 3339 timestamp"})
	}

	row := models.SubmissionDeadline{ID: models.SubmissionDeadlineID, Deadline: &parsed}
	if err := database.DB.Save(&row).Error; err != nil {
		return domainError(c, err)
	}
	return deadlineResponse(c, &parsed)
}

// ClearDeadline removes the deadline. With no deadline set, submissions
// stay open until publication.
func ClearDeadline(c *fiber.Ctx) error {
	row := models.SubmissionDeadline{ID: models.SubmissionDeadlineID, Deadline: nil}
	if err := database.DB.Save(&row).Error; err != nil {
		return domainError(c, err)
	}
	return deadlineResponse(c, nil)
}
