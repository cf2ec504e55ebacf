package progress

import (
	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

// Status is the derived workflow state of a (task, enrollment) pair.
// It is never stored; it is recomputed from the raw collections.
type Status string

const (
	StatusNotStarted Status = "notStarted"
	StatusPending    Status = "pending"
	StatusCompleted  Status = "completed"
)

// Statuses lists all derivable states.
var Statuses = []Status{StatusNotStarted, StatusPending, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusNotStarted || s == StatusPending || s == StatusCompleted
}

// Collections is the raw input of a derivation: the latest snapshots of
// the five remote collections, passed explicitly so the functions stay
// pure and unit-testable without a live platform.
type Collections struct {
	Users       []user.User
	Courses     []course.Course
	Tasks       []task.Task
	Enrollments []enrollment.Enrollment
	Completions []completion.TaskCompletion
}

// StudentTask is one entry of the "my tasks by status" view.
type StudentTask struct {
	Task         task.Task     `json:"task"`
	Course       course.Course `json:"course"`
	Status       Status        `json:"status"`
	AssignerID   int           `json:"assignerId"`
	AssignerName string        `json:"assignerName"`
	EnrollmentID int           `json:"enrollmentId"`
	CompletionID null.Int      `json:"taskCompletionId,omitempty"`
}

// ReviewTask is one entry of the "tasks awaiting my review" view.
// StudentName identifies who submitted; the status is always pending.
type ReviewTask struct {
	Task         task.Task     `json:"task"`
	Course       course.Course `json:"course"`
	Status       Status        `json:"status"`
	StudentName  string        `json:"studentName"`
	CompletionID int           `json:"taskCompletionId"`
	StudentID    int           `json:"studentId"`
}

// CourseProgress summarizes one active enrollment of a student.
type CourseProgress struct {
	Course         course.Course `json:"course"`
	EnrollmentID   int           `json:"enrollmentId"`
	TotalTasks     int           `json:"totalTasks"`
	CompletedTasks int           `json:"completedTasks"`
}
