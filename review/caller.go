package review

import "github.com/google/uuid"

// Caller identifies the authenticated principal behind an operation.
// Handlers build it once from the JWT and pass it explicitly so role checks
// live at the entry of each operation instead of being scattered.
type Caller struct {
	ID       uuid.UUID
	Username string
	Role     string
}

func (c Caller) IsInstructor() bool { return c.Role == "instructor" }

func (c Caller) IsStudent() bool { return c.Role == "student" }

// MayViewResultsOf reports whether the caller may read the given student's
// aggregated results once the publication gate allows it. Instructors may
// view anyone; students view their own through the personal endpoints.
func (c Caller) MayViewResultsOf(studentID uuid.UUID) bool {
	return c.IsInstructor() || c.ID == studentID
}
