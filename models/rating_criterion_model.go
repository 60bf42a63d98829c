package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingCriterion is a scored dimension on the peer review form. The four
// defaults are seeded at startup; further rows are synthesized from
// instructor-authored EvaluationCriterion records.
type RatingCriterion struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Required bool      `gorm:"not null;default:true" json:"required"`
	ScaleMin int       `gorm:"not null;default:1" json:"-"`
	ScaleMax int       `gorm:"not null;default:5" json:"-"`
	Weight   float64   `gorm:"type:numeric(6,2);not null;default:1.0" json:"weight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
