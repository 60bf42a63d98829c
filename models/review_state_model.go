package models

import "time"

// ReviewState is a singleton row (id = 1) holding the current review phase.
// It is read fresh on every phase-sensitive operation so multiple server
// instances stay consistent.
type ReviewState struct {
	ID        int       `gorm:"primary_key" json:"-"`
	Status    string    `gorm:"size:20;not null;default:'draft'" json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

const ReviewStateID = 1
