package handlers

import (
	"log"
	"time"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/notifications"
	"github.com/peerevalpro/peer_review/review"
	"github.com/peerevalpro/peer_review/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewStateRequest struct {
	Status string `json:"status" validate:"required"`
}

func GetReviewState(c *fiber.Ctx) error {
	phase, err := currentPhase(database.DB)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"status": phase})
}

// SetReviewState is the administrative override: any canonical phase (or
// legacy alias) may be set directly.
func SetReviewState(c *fiber.Ctx) error {
	var req ReviewStateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	phase, err := review.ParsePhase(req.Status)
	if err != nil {
		return domainError(c, err)
	}

	if err := saveReviewState(database.DB, phase); err != nil {
		return domainError(c, err)
	}

	websocket.BroadcastEvent(websocket.Event{Type: "state_changed", Status: string(phase), At: time.Now()})
	return c.JSON(fiber.Map{"status": phase})
}

// StartNextRound moves the review from draft into the active rating round.
// Round-one submissions become read-only history from here on.
func StartNextRound(c *fiber.Ctx) error {
	var next review.Phase
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		phase, err := currentPhase(tx)
		if err != nil {
			return err
		}
		next, err = review.NextRound(phase)
		if err != nil {
			return err
		}
		return saveReviewState(tx, next)
	})
	if err != nil {
		return domainError(c, err)
	}

	websocket.BroadcastEvent(websocket.Event{Type: "round_started", Status: string(next), At: time.Now()})
	return c.JSON(fiber.Map{"status": next})
}

// PublishResults opens the publication gate. Idempotent: a second call
// reports already_published without writing a second audit record.
func PublishResults(c *fiber.Ctx) error {
	caller := currentCaller(c)

	already := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		published, err := resultsPublished(tx)
		if err != nil {
			return err
		}
		if published {
			already = true
			return nil
		}
		record := models.ResultsPublication{
			PublishedAt: time.Now(),
			PublishedBy: caller.ID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return saveReviewState(tx, review.PhasePublished)
	})
	if err != nil {
		return domainError(c, err)
	}

	if !already {
		websocket.BroadcastEvent(websocket.Event{Type: "results_published", Status: string(review.PhasePublished), At: time.Now()})
		go notifyStudentsOfPublication()
	}
	return c.JSON(fiber.Map{"ok": true, "already_published": already})
}

// UnpublishResults clears the publication record and reopens editing. This
// is the only backward transition in the lifecycle.
func UnpublishResults(c *fiber.Ctx) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ResultsPublication{}).Error; err != nil {
			return err
		}
		return saveReviewState(tx, review.PhaseStarted)
	})
	if err != nil {
		return domainError(c, err)
	}

	websocket.BroadcastEvent(websocket.Event{Type: "results_unpublished", Status: string(review.PhaseStarted), At: time.Now()})
	return c.JSON(fiber.Map{"ok": true, "status": review.PhaseStarted})
}

func saveReviewState(tx *gorm.DB, phase review.Phase) error {
	state := models.ReviewState{ID: models.ReviewStateID, Status: string(phase)}
	return tx.Save(&state).Error
}

func notifyStudentsOfPublication() {
	var students []models.User
	if err := database.DB.Where("role = ?", models.RoleStudent).Find(&students).Error; err != nil {
		log.Printf("🔥 Failed to load students for publication notice: %v", err)
		return
	}
	for _, s := range students {
		go notifications.SendEmail(
			s.Username,
			s.Email,
			"Your Peer Review Results Are Available",
			"<h1>Results Published</h1><p>Your peer review results have been published. Log in to view your report.</p>",
		)
	}
}
