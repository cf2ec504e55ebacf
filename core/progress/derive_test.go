package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

// classroom is the shared fixture: a teacher assigning two courses to
// two students, with tasks in every derived state.
func classroom() Collections {
	return Collections{
		Users: []user.User{
			{ID: 1, Username: "jane", FirstName: "Jane", LastName: "Doe", Role: user.RoleTeacher, IsActive: true},
			{ID: 2, Username: "awe", FirstName: "Awe", LastName: "Mfoka", Role: user.RoleStudent, IsActive: true},
			{ID: 3, Username: "hera", FirstName: "Hera", LastName: "Kali", Role: user.RoleStudent, IsActive: true},
		},
		Courses: []course.Course{
			{ID: 10, Title: "Algebra", TeacherID: 1, IsActive: true},
			{ID: 11, Title: "Biology", TeacherID: 1, IsActive: true},
			{ID: 12, Title: "Archived", TeacherID: 1, IsActive: false},
		},
		Tasks: []task.Task{
			{ID: 20, Title: "Linear equations", CourseID: 10, IsActive: true},
			{ID: 21, Title: "Polynomials", CourseID: 10, IsActive: true},
			{ID: 22, Title: "Old homework", CourseID: 10, IsActive: false},
			{ID: 23, Title: "Cells", CourseID: 11, IsActive: true},
			{ID: 24, Title: "Dust", CourseID: 12, IsActive: true},
		},
		Enrollments: []enrollment.Enrollment{
			{ID: 30, StudentID: 2, CourseID: 10, AssignerID: 1, IsActive: true},
			{ID: 31, StudentID: 2, CourseID: 11, AssignerID: 1, IsActive: true},
			{ID: 32, StudentID: 2, CourseID: 12, AssignerID: 1, IsActive: true},  // archived course
			{ID: 33, StudentID: 3, CourseID: 10, AssignerID: 1, IsActive: false}, // withdrawn
			{ID: 34, StudentID: 3, CourseID: 11, AssignerID: 1, IsActive: true},
		},
		Completions: []completion.TaskCompletion{
			{ID: 40, TaskID: 20, EnrollmentID: 30, Status: completion.StatusPending},
			{ID: 41, TaskID: 21, EnrollmentID: 30, Status: completion.StatusApproved},
			{ID: 42, TaskID: 20, EnrollmentID: 33, Status: completion.StatusPending}, // withdrawn enrollment
			{ID: 43, TaskID: 23, EnrollmentID: 34, Status: completion.StatusPending},
		},
	}
}

func taskIDs(entries []StudentTask) []int {
	ids := make([]int, len(entries))
	for i, entry := range entries {
		ids[i] = entry.Task.ID
	}
	return ids
}

func TestStudentTasks(t *testing.T) {
	in := classroom()

	tests := []struct {
		name      string
		studentID int
		status    Status
		wantTasks []int
	}{
		{name: "not started", studentID: 2, status: StatusNotStarted, wantTasks: []int{23}},
		{name: "pending", studentID: 2, status: StatusPending, wantTasks: []int{20}},
		{name: "completed", studentID: 2, status: StatusCompleted, wantTasks: []int{21}},
		{name: "withdrawn enrollment yields nothing", studentID: 3, status: StatusPending, wantTasks: []int{}},
		{name: "other student sees own tasks only", studentID: 3, status: StatusNotStarted, wantTasks: []int{}},
		{name: "unknown student", studentID: 99, status: StatusPending, wantTasks: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StudentTasks(in, tt.studentID, tt.status)
			assert.ElementsMatch(t, tt.wantTasks, taskIDs(got))
		})
	}
}

func TestStudentTasks_entryFields(t *testing.T) {
	in := classroom()

	got := StudentTasks(in, 2, StatusPending)
	if len(got) != 1 {
		t.Fatalf("StudentTasks() returned %d entries, want 1", len(got))
	}
	entry := got[0]
	if entry.Course.ID != 10 {
		t.Errorf("Course.ID = %d, want 10", entry.Course.ID)
	}
	if entry.EnrollmentID != 30 {
		t.Errorf("EnrollmentID = %d, want 30", entry.EnrollmentID)
	}
	if entry.AssignerID != 1 || entry.AssignerName != "Jane Doe" {
		t.Errorf("assigner = (%d, %q), want (1, \"Jane Doe\")", entry.AssignerID, entry.AssignerName)
	}
	if entry.CompletionID != null.IntFrom(40) {
		t.Errorf("CompletionID = %v, want 40", entry.CompletionID)
	}
}

func TestStudentTasks_danglingReferences(t *testing.T) {
	in := classroom()

	t.Run("missing course drops the enrollment", func(t *testing.T) {
		in := classroom()
		in.Courses = in.Courses[1:] // drop Algebra
		got := StudentTasks(in, 2, StatusPending)
		assert.ElementsMatch(t, []int{}, taskIDs(got))
	})

	t.Run("missing assigner falls back to Unknown", func(t *testing.T) {
		in := classroom()
		in.Users = in.Users[1:] // drop the teacher
		got := StudentTasks(in, 2, StatusPending)
		if len(got) != 1 || got[0].AssignerName != "Unknown" {
			t.Errorf("StudentTasks() = %+v, want one entry assigned by \"Unknown\"", got)
		}
	})

	t.Run("duplicate completions: first wins", func(t *testing.T) {
		in := classroom()
		in.Completions = append(in.Completions, completion.TaskCompletion{
			ID: 99, TaskID: 20, EnrollmentID: 30, Status: completion.StatusApproved,
		})
		got := StudentTasks(in, 2, StatusPending)
		if len(got) != 1 || got[0].CompletionID != null.IntFrom(40) {
			t.Errorf("StudentTasks() = %+v, want the first completion (40) to win", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first := StudentTasks(in, 2, StatusNotStarted)
		second := StudentTasks(in, 2, StatusNotStarted)
		assert.Equal(t, first, second)
	})
}

func TestReviewTasks(t *testing.T) {
	in := classroom()

	got := ReviewTasks(in, 1)
	ids := make([]int, len(got))
	for i, entry := range got {
		ids[i] = entry.CompletionID
	}
	// 41 is approved; 42 sits on a withdrawn enrollment
	assert.ElementsMatch(t, []int{40, 43}, ids)

	for _, entry := range got {
		if entry.Status != StatusPending {
			t.Errorf("ReviewTasks() entry %d status = %s, want pending", entry.CompletionID, entry.Status)
		}
	}
}

func TestReviewTasks_danglingReferences(t *testing.T) {
	t.Run("not the assigner", func(t *testing.T) {
		got := ReviewTasks(classroom(), 2)
		assert.ElementsMatch(t, []ReviewTask{}, got)
	})

	t.Run("soft-deleted task skipped", func(t *testing.T) {
		in := classroom()
		in.Tasks[0].IsActive = false // task 20
		got := ReviewTasks(in, 1)
		if len(got) != 1 || got[0].CompletionID != 43 {
			t.Errorf("ReviewTasks() = %+v, want only completion 43", got)
		}
	})

	t.Run("soft-deleted course skipped", func(t *testing.T) {
		in := classroom()
		in.Courses[1].IsActive = false // Biology
		got := ReviewTasks(in, 1)
		if len(got) != 1 || got[0].CompletionID != 40 {
			t.Errorf("ReviewTasks() = %+v, want only completion 40", got)
		}
	})

	t.Run("missing student falls back to Unknown Student", func(t *testing.T) {
		in := classroom()
		in.Users = in.Users[:2] // drop Hera
		got := ReviewTasks(in, 1)
		for _, entry := range got {
			if entry.StudentID == 3 && entry.StudentName != "Unknown Student" {
				t.Errorf("StudentName = %q, want \"Unknown Student\"", entry.StudentName)
			}
		}
	})
}

func TestCourses(t *testing.T) {
	in := classroom()

	got := Courses(in, 2)
	byCourse := map[int]CourseProgress{}
	for _, summary := range got {
		byCourse[summary.Course.ID] = summary
	}

	// Algebra: 2 active tasks, 1 approved. Biology: 1 task, none approved.
	// The archived course is dropped entirely.
	if len(got) != 2 {
		t.Fatalf("Courses() returned %d summaries, want 2", len(got))
	}
	if s := byCourse[10]; s.TotalTasks != 2 || s.CompletedTasks != 1 {
		t.Errorf("Algebra progress = %d/%d, want 1/2", s.CompletedTasks, s.TotalTasks)
	}
	if s := byCourse[11]; s.TotalTasks != 1 || s.CompletedTasks != 0 {
		t.Errorf("Biology progress = %d/%d, want 0/1", s.CompletedTasks, s.TotalTasks)
	}
}
