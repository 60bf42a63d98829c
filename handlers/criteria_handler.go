package handlers

import (
	"time"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CriterionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description"`
}

type CriterionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func criterionResponse(c models.EvaluationCriterion) CriterionResponse {
	return CriterionResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

// CreateCriterion adds an instructor-authored criterion. Only legal once the
// active rating round has started; the draft form carries defaults only.
// A companion rating row is written in the same transaction so the new
// criterion shows up on the form with the standard 1-5 scale.
func CreateCriterion(c *fiber.Ctx) error {
	var req CriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var created models.EvaluationCriterion
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		phase, err := currentPhase(tx)
		if err != nil {
			return err
		}
		if err := review.CanCreateCriterion(phase); err != nil {
			return err
		}

		created = models.EvaluationCriterion{
			Name:        req.Name,
			Description: req.Description,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.RatingCriterion{}).
			Where("LOWER(title) = LOWER(?)", req.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		rating := models.RatingCriterion{
			Title:    req.Name,
			Required: true,
			ScaleMin: 1,
			ScaleMax: 5,
			Weight:   1.0,
		}
		return tx.Create(&rating).Error
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(criterionResponse(created))
}

func ListCriteria(c *fiber.Ctx) error {
	var rows []models.EvaluationCriterion
	if err := database.DB.Order("created_at").Find(&rows).Error; err != nil {
		return domainError(c, err)
	}
	out := make([]CriterionResponse, len(rows))
	for i, r := range rows {
		out[i] = criterionResponse(r)
	}
	return c.JSON(fiber.Map{"criteria": out})
}

func UpdateCriterion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid criterion id"})
	}

	var req CriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var updated models.EvaluationCriterion
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		phase, err := currentPhase(tx)
		if err != nil {
			return err
		}
		if err := review.CanUpdateCriterion(phase); err != nil {
			return err
		}

		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			return err
		}
		oldName := updated.Name
		updated.Name = req.Name
		updated.Description = req.Description
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}

		// keep the companion rating row in step with the rename
		return tx.Model(&models.RatingCriterion{}).
			Where("LOWER(title) = LOWER(?)", oldName).
			Update("title", req.Name).Error
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(criterionResponse(updated))
}

func DeleteCriterion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid criterion id"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		phase, err := currentPhase(tx)
		if err != nil {
			return err
		}
		if err := review.CanDeleteCriterion(phase); err != nil {
			return err
		}

		var existing models.EvaluationCriterion
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}

		return tx.Where("LOWER(title) = LOWER(?)", existing.Name).
			Delete(&models.RatingCriterion{}).Error
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
