package models

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationCriterion is an instructor-authored criterion (name plus
// description). Each one has a companion RatingCriterion carrying the
// scale and weight used for scoring.
type EvaluationCriterion struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
