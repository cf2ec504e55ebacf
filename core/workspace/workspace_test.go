package workspace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/progress"
	"github.com/peerclass/peerclass/core/user"
	"github.com/peerclass/peerclass/core/workspace"
	inmemdb "github.com/peerclass/peerclass/storage/inmem"
	testutil "github.com/peerclass/peerclass/tests"
)

type fixture struct {
	db      *inmemdb.DB
	teacher user.User
	student user.User
	taskIDs []int
}

// seed: a teacher assigning one two-task course to one student
func setup(t *testing.T) fixture {
	db := testutil.PrepareDB()
	teacher := testutil.CreateUser(db, "Jane Doe", user.RoleTeacher, true)
	student := testutil.CreateUser(db, "Awe Mfoka", user.RoleStudent, true)
	cat := testutil.CreateCategory(db, "Science")
	crs := testutil.CreateCourse(db, "Algebra", cat.ID, teacher.ID, true)
	tsk1 := testutil.CreateTask(db, "Linear equations", crs.ID, true)
	tsk2 := testutil.CreateTask(db, "Polynomials", crs.ID, true)
	testutil.CreateEnrollment(db, student.ID, crs.ID, teacher.ID, true)
	return fixture{db: db, teacher: teacher, student: student, taskIDs: []int{tsk1.ID, tsk2.ID}}
}

func openWorkspace(t *testing.T, db *inmemdb.DB, usr user.User) *workspace.Workspace {
	ws := workspace.New(usr, db.Repositories())
	if err := ws.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll() failed: %v", err)
	}
	if ws.Loading() {
		t.Fatal("Loading() = true after RefreshAll()")
	}
	return ws
}

func pendingIDs(ws *workspace.Workspace) []int {
	entries := ws.StudentTasks(progress.StatusPending)
	ids := make([]int, len(entries))
	for i, entry := range entries {
		ids[i] = entry.Task.ID
	}
	return ids
}

func TestWorkspace_completionFlow(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	studentWs := openWorkspace(t, fix.db, fix.student)
	teacherWs := openWorkspace(t, fix.db, fix.teacher)

	// everything starts not-started
	notStarted := studentWs.StudentTasks(progress.StatusNotStarted)
	if len(notStarted) != 2 {
		t.Fatalf("StudentTasks(notStarted) = %d entries, want 2", len(notStarted))
	}
	assert.Empty(t, teacherWs.ReviewTasks())

	// student submits the first task
	if err := studentWs.Complete(ctx, fix.taskIDs[0]); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	assert.ElementsMatch(t, []int{fix.taskIDs[0]}, pendingIDs(studentWs))

	// the teacher's workspace has its own snapshot and must re-fetch
	if _, err := teacherWs.Completions.Refresh(ctx); err != nil {
		t.Fatalf("Completions.Refresh() error = %v", err)
	}
	reviews := teacherWs.ReviewTasks()
	if len(reviews) != 1 {
		t.Fatalf("ReviewTasks() = %d entries, want 1", len(reviews))
	}
	review := reviews[0]
	if review.Task.ID != fix.taskIDs[0] || review.StudentName != "Awe Mfoka" {
		t.Errorf("review = %+v, want task %d by \"Awe Mfoka\"", review, fix.taskIDs[0])
	}

	// teacher approves
	if err := teacherWs.Approve(ctx, review.CompletionID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	assert.Empty(t, teacherWs.ReviewTasks())

	// ...and the student sees it completed after their own refresh
	if _, err := studentWs.Completions.Refresh(ctx); err != nil {
		t.Fatalf("Completions.Refresh() error = %v", err)
	}
	completed := studentWs.StudentTasks(progress.StatusCompleted)
	if len(completed) != 1 || completed[0].Task.ID != fix.taskIDs[0] {
		t.Fatalf("StudentTasks(completed) = %+v, want task %d", completed, fix.taskIDs[0])
	}
	tc, err := studentWs.Completions.GetByID(completed[0].CompletionID.Int)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if tc.Status != completion.StatusApproved || !tc.CompletedAt.Valid {
		t.Errorf("approved completion = %+v, want approved with CompletedAt set", tc)
	}

	// progress summary reflects one of two tasks done
	summaries := studentWs.CourseProgress()
	if len(summaries) != 1 {
		t.Fatalf("CourseProgress() = %d summaries, want 1", len(summaries))
	}
	if s := summaries[0]; s.TotalTasks != 2 || s.CompletedTasks != 1 {
		t.Errorf("progress = %d/%d, want 1/2", s.CompletedTasks, s.TotalTasks)
	}
}

func TestWorkspace_completeRequiresEnrollment(t *testing.T) {
	fix := setup(t)
	outsider := testutil.CreateUser(fix.db, "Hera Kali", user.RoleStudent, true)

	ws := openWorkspace(t, fix.db, outsider)
	if err := ws.Complete(context.Background(), fix.taskIDs[0]); err != completion.ErrNotEnrolled {
		t.Errorf("Complete() error = %v, want ErrNotEnrolled", err)
	}
}

func TestWorkspace_enrollmentDeactivationHidesTasks(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	ws := openWorkspace(t, fix.db, fix.student)
	if err := ws.Complete(ctx, fix.taskIDs[0]); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// withdrawing the enrollment drops the tasks from every view
	enr := ws.Enrollments.ByStudentID(fix.student.ID)[0]
	if err := ws.Enrollments.Delete(ctx, enr.ID); err != nil {
		t.Fatalf("Enrollments.Delete() error = %v", err)
	}
	for _, status := range progress.Statuses {
		if got := ws.StudentTasks(status); len(got) != 0 {
			t.Errorf("StudentTasks(%s) = %d entries after withdrawal, want 0", status, len(got))
		}
	}

	teacherWs := openWorkspace(t, fix.db, fix.teacher)
	assert.Empty(t, teacherWs.ReviewTasks())
}
