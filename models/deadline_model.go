package models

import "time"

// SubmissionDeadline is a singleton row (id = 1). A NULL deadline means
// submissions are always open.
type SubmissionDeadline struct {
	ID        int        `gorm:"primary_key" json:"-"`
	Deadline  *time.Time `json:"deadline"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const SubmissionDeadlineID = 1
