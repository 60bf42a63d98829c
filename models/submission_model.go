package models

import (
	"time"

	"github.com/google/uuid"
)

// PeerReviewSubmission stores one rating a reviewer gave a teammate on one
// criterion in one round. The composite unique index makes a resubmission
// an upsert instead of a duplicate row.
type PeerReviewSubmission struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReviewerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_peer_review_unique" json:"reviewer_id"`
	RevieweeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_peer_review_unique" json:"reviewee_id"`
	CriterionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_peer_review_unique" json:"criterion_id"`
	Rating      int       `gorm:"not null" json:"rating"`
	Round       string    `gorm:"size:20;not null;default:'round1';uniqueIndex:idx_peer_review_unique" json:"round"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`

	Reviewer  User            `gorm:"foreignkey:ReviewerID" json:"-"`
	Reviewee  User            `gorm:"foreignkey:RevieweeID" json:"-"`
	Criterion RatingCriterion `gorm:"foreignkey:CriterionID" json:"-"`
}
