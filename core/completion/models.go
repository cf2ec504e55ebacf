package completion

import "github.com/volatiletech/null/v8"

// Status is the approval state of a submission. The platform wire
// format overloads its `is_active` boolean for this ("submitted, not
// yet approved" vs "approved"); storage backends translate it to and
// from this dedicated enum so it cannot be confused with the soft
// delete convention used by every other entity.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// TaskCompletion is a student's submission for a task under a specific
// enrollment. CompletedAt is set only once the assigner approves.
type TaskCompletion struct {
	ID           int       `json:"id"`
	TaskID       int       `json:"taskId"`
	EnrollmentID int       `json:"enrollmentId"`
	Status       Status    `json:"status"`
	CompletedAt  null.Time `json:"completedAt"`
}

func (tc TaskCompletion) Approved() bool { return tc.Status == StatusApproved }
