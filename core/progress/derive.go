package progress

import (
	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

// Fallback display names for dangling user references.
const (
	unknownAssigner = "Unknown"
	unknownStudent  = "Unknown Student"
)

// StudentTasks derives the "my tasks by status" view for one student.
//
// For every active enrollment of the student whose course is still
// active, each active task of that course is resolved against the
// task-completions collection: no record means notStarted, a pending
// record means pending, an approved one means completed. Only entries
// matching the requested status are emitted, in input-collection order.
// Dangling references (missing course, assigner, ...) skip the affected
// entry rather than failing the whole derivation.
func StudentTasks(in Collections, studentID int, status Status) []StudentTask {
	result := []StudentTask{}

	for _, enr := range in.Enrollments {
		if enr.StudentID != studentID || !enr.IsActive {
			continue
		}
		crs, ok := findCourse(in.Courses, enr.CourseID)
		if !ok {
			continue
		}

		for _, tsk := range in.Tasks {
			if tsk.CourseID != crs.ID || !tsk.IsActive {
				continue
			}

			derived := StatusNotStarted
			var completionID null.Int
			// more than one completion per (task, enrollment) should not
			// exist; the first found wins if the backend let one slip in
			if tc, ok := findCompletion(in.Completions, tsk.ID, enr.ID); ok {
				completionID = null.IntFrom(tc.ID)
				if tc.Approved() {
					derived = StatusCompleted
				} else {
					derived = StatusPending
				}
			}
			if derived != status {
				continue
			}

			assignerName := unknownAssigner
			if assigner, ok := findUser(in.Users, enr.AssignerID); ok {
				assignerName = assigner.Name()
			}

			result = append(result, StudentTask{
				Task:         tsk,
				Course:       crs,
				Status:       derived,
				AssignerID:   enr.AssignerID,
				AssignerName: assignerName,
				EnrollmentID: enr.ID,
				CompletionID: completionID,
			})
		}
	}

	return result
}

// ReviewTasks derives the "tasks awaiting my review" view for an
// assigner: every pending completion whose active enrollment was created
// by them, with the task and course both still active. A completion with
// any dangling or soft-deleted reference is silently skipped.
func ReviewTasks(in Collections, assignerID int) []ReviewTask {
	result := []ReviewTask{}

	for _, tc := range in.Completions {
		if tc.Approved() {
			continue
		}
		enr, ok := findEnrollment(in.Enrollments, tc.EnrollmentID)
		if !ok || enr.AssignerID != assignerID {
			continue
		}
		tsk, ok := findTask(in.Tasks, tc.TaskID)
		if !ok {
			continue
		}
		crs, ok := findCourse(in.Courses, tsk.CourseID)
		if !ok {
			continue
		}

		studentName := unknownStudent
		if student, ok := findUser(in.Users, enr.StudentID); ok {
			studentName = student.Name()
		}

		result = append(result, ReviewTask{
			Task:         tsk,
			Course:       crs,
			Status:       StatusPending,
			StudentName:  studentName,
			CompletionID: tc.ID,
			StudentID:    enr.StudentID,
		})
	}

	return result
}

// Courses derives a per-enrollment progress summary for a student:
// the number of active tasks in each actively enrolled course and how
// many of them have been approved.
func Courses(in Collections, studentID int) []CourseProgress {
	result := []CourseProgress{}

	for _, enr := range in.Enrollments {
		if enr.StudentID != studentID || !enr.IsActive {
			continue
		}
		crs, ok := findCourse(in.Courses, enr.CourseID)
		if !ok {
			continue
		}

		summary := CourseProgress{Course: crs, EnrollmentID: enr.ID}
		for _, tsk := range in.Tasks {
			if tsk.CourseID != crs.ID || !tsk.IsActive {
				continue
			}
			summary.TotalTasks++
			if tc, ok := findCompletion(in.Completions, tsk.ID, enr.ID); ok && tc.Approved() {
				summary.CompletedTasks++
			}
		}
		result = append(result, summary)
	}

	return result
}

func findUser(users []user.User, id int) (user.User, bool) {
	for _, usr := range users {
		if usr.ID == id {
			return usr, true
		}
	}
	return user.User{}, false
}

func findCourse(courses []course.Course, id int) (course.Course, bool) {
	for _, crs := range courses {
		if crs.ID == id && crs.IsActive {
			return crs, true
		}
	}
	return course.Course{}, false
}

func findTask(tasks []task.Task, id int) (task.Task, bool) {
	for _, tsk := range tasks {
		if tsk.ID == id && tsk.IsActive {
			return tsk, true
		}
	}
	return task.Task{}, false
}

func findEnrollment(enrollments []enrollment.Enrollment, id int) (enrollment.Enrollment, bool) {
	for _, enr := range enrollments {
		if enr.ID == id && enr.IsActive {
			return enr, true
		}
	}
	return enrollment.Enrollment{}, false
}

func findCompletion(completions []completion.TaskCompletion, taskID, enrollmentID int) (completion.TaskCompletion, bool) {
	for _, tc := range completions {
		if tc.TaskID == taskID && tc.EnrollmentID == enrollmentID {
			return tc, true
		}
	}
	return completion.TaskCompletion{}, false
}
