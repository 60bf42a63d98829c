package models

import (
	"time"

	"github.com/google/uuid"
)

// ResultsPublication is the audit record behind the publication gate.
// One or more rows means results are visible to students.
type ResultsPublication struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`
	PublishedBy uuid.UUID `gorm:"type:uuid;not null" json:"published_by"`

	Publisher User `gorm:"foreignkey:PublishedBy" json:"-"`
}
