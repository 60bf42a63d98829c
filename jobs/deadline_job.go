package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/notifications"
	"github.com/peerevalpro/peer_review/review"
)

const reminderWindow = 24 * time.Hour

// SendDeadlineReminders emails every student who has not submitted any
// review in the current round once the deadline is less than a day away.
func SendDeadlineReminders() {
	log.Println("Running job: SendDeadlineReminders...")

	var deadlineRow models.SubmissionDeadline
	if err := database.DB.First(&deadlineRow, "id = ?", models.SubmissionDeadlineID).Error; err != nil {
		return
	}
	if deadlineRow.Deadline == nil {
		return
	}

	now := time.Now()
	if !now.Before(*deadlineRow.Deadline) || deadlineRow.Deadline.Sub(now) > reminderWindow {
		return
	}

	var state models.ReviewState
	if err := database.DB.First(&state, "id = ?", models.ReviewStateID).Error; err != nil {
		log.Printf("Error reading review state: %v", err)
		return
	}
	phase, err := review.ParsePhase(state.Status)
	if err != nil || phase == review.PhasePublished {
		return
	}
	round := review.RoundFor(phase)

	var students []models.User
	err = database.DB.Where("role = ?", models.RoleStudent).Find(&students).Error
	if err != nil {
		log.Printf("Error loading students for deadline reminders: %v", err)
		return
	}

	for _, student := range students {
		var submitted int64
		err := database.DB.Model(&models.PeerReviewSubmission{}).
			Where("reviewer_id = ? AND round = ?", student.ID, round).
			Count(&submitted).Error
		if err != nil {
			log.Printf("Error counting submissions for student %s: %v", student.ID, err)
			continue
		}
		if submitted > 0 {
			continue
		}

		emailSubject := "Reminder: Peer Review Deadline Approaching"
		emailBody := fmt.Sprintf(
			"<h1>Peer Review Reminder</h1><p>Hi %s,</p><p>You have not submitted your peer reviews yet. The submission deadline is %s.</p>",
			student.Username,
			deadlineRow.Deadline.Format("January 2, 2006 at 3:04 PM"),
		)
		go notifications.SendEmail(student.Username, student.Email, emailSubject, emailBody)
	}
}
