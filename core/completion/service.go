package completion

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
)

var (
	// ErrNotEnrolled is returned when the student has no active
	// enrollment in the task's course.
	ErrNotEnrolled = errors.New("no active enrollment for this course")
	// ErrSubmissionInFlight is returned when a submission for the same
	// task is still awaiting its refresh; the platform has no unique
	// constraint on (task, enrollment) so a double submit would create
	// a duplicate record.
	ErrSubmissionInFlight = errors.New("a submission for this task is already in flight")
)

var nowFunc = time.Now // mockable

// Service drives the completion workflow:
//
//	NotStarted -- Complete --> Pending -- Approve --> Completed
//
// NotStarted is implicit (no record exists). Both transitions go through
// the task-completions store, which re-fetches its collection afterwards.
type Service struct {
	completions *Store
	tasks       *task.Store
	enrollments *enrollment.Store

	mutex    sync.Mutex
	inFlight map[int]bool // task ids with a pending submission
}

func NewService(completions *Store, tasks *task.Store, enrollments *enrollment.Store) *Service {
	return &Service{
		completions: completions,
		tasks:       tasks,
		enrollments: enrollments,
		inFlight:    make(map[int]bool),
	}
}

// Complete submits the student's work for a task. It resolves the task's
// course and requires an active enrollment of the student in it; without
// one the operation fails with ErrNotEnrolled.
func (svc *Service) Complete(ctx context.Context, studentID, taskID int) error {
	tsk, err := svc.tasks.GetByID(taskID)
	if err != nil {
		return err
	}

	enr, err := svc.activeEnrollment(studentID, tsk.CourseID)
	if err != nil {
		return err
	}

	svc.mutex.Lock()
	if svc.inFlight[taskID] {
		svc.mutex.Unlock()
		return ErrSubmissionInFlight
	}
	svc.inFlight[taskID] = true
	svc.mutex.Unlock()

	defer func() {
		svc.mutex.Lock()
		delete(svc.inFlight, taskID)
		svc.mutex.Unlock()
	}()

	_, err = svc.completions.Create(ctx, TaskCompletion{
		TaskID:       taskID,
		EnrollmentID: enr.ID,
		Status:       StatusPending,
	})
	return err
}

// Approve marks a pending submission as completed. The completion must
// already be present in the local snapshot; its task and enrollment
// references are preserved and CompletedAt is stamped now.
func (svc *Service) Approve(ctx context.Context, completionID int) error {
	tc, err := svc.completions.GetByID(completionID)
	if err != nil {
		return err
	}

	return svc.completions.Update(ctx, completionID, TaskCompletion{
		TaskID:       tc.TaskID,
		EnrollmentID: tc.EnrollmentID,
		Status:       StatusApproved,
		CompletedAt:  null.TimeFrom(nowFunc().UTC()),
	})
}

func (svc *Service) activeEnrollment(studentID, courseID int) (enrollment.Enrollment, error) {
	for _, enr := range svc.enrollments.ByStudentID(studentID) {
		if enr.CourseID == courseID && enr.IsActive {
			return enr, nil
		}
	}
	return enrollment.Enrollment{}, ErrNotEnrolled
}
