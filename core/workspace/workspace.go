package workspace

import (
	"context"
	"sync"

	"github.com/peerclass/peerclass/core/category"
	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/progress"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

type (
	// Repositories regroups the remote collection contracts one
	// authenticated session works against.
	Repositories struct {
		Users       user.Repository
		Categories  category.Repository
		Courses     course.Repository
		Tasks       task.Repository
		Enrollments enrollment.Repository
		Completions completion.Repository
	}

	// Workspace bundles the record stores, the derivation engine and the
	// completion workflow for one user session. The remote collections
	// are the source of truth; nothing here survives the session.
	Workspace struct {
		User user.User // the acting user

		Users       *user.Store
		Categories  *category.Store
		Courses     *course.Store
		Tasks       *task.Store
		Enrollments *enrollment.Store
		Completions *completion.Store

		Engine      *progress.Engine
		Workflow    *completion.Service
	}
)

// New wires a workspace for the acting user over the given backends.
func New(actingUser user.User, repos Repositories) *Workspace {
	users := user.NewStore(repos.Users)
	categories := category.NewStore(repos.Categories)
	courses := course.NewStore(repos.Courses)
	tasks := task.NewStore(repos.Tasks)
	enrollments := enrollment.NewStore(repos.Enrollments)
	completions := completion.NewStore(repos.Completions)

	return &Workspace{
		User:        actingUser,
		Users:       users,
		Categories:  categories,
		Courses:     courses,
		Tasks:       tasks,
		Enrollments: enrollments,
		Completions: completions,
		Engine:      progress.NewEngine(users, courses, tasks, enrollments, completions),
		Workflow:    completion.NewService(completions, tasks, enrollments),
	}
}

// RefreshAll fetches every collection concurrently, the way the original
// client loads on startup. In-flight fetches are never cancelled; if two
// refreshes of the same store race, the last write wins. The first error
// is returned, but every store still settles before RefreshAll does.
func (ws *Workspace) RefreshAll(ctx context.Context) error {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	refresh := func(fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				once.Do(func() { firstErr = err })
			}
		}()
	}

	refresh(func(ctx context.Context) error { _, err := ws.Users.Refresh(ctx); return err })
	refresh(func(ctx context.Context) error { _, err := ws.Categories.Refresh(ctx); return err })
	refresh(func(ctx context.Context) error { _, err := ws.Courses.Refresh(ctx); return err })
	refresh(func(ctx context.Context) error { _, err := ws.Tasks.Refresh(ctx); return err })
	refresh(func(ctx context.Context) error { _, err := ws.Enrollments.Refresh(ctx); return err })
	refresh(func(ctx context.Context) error { _, err := ws.Completions.Refresh(ctx); return err })

	wg.Wait()
	return firstErr
}

// Loading is the aggregate "still loading" flag callers gate on before
// trusting derived results.
func (ws *Workspace) Loading() bool {
	return ws.Engine.Loading() || ws.Categories.Loading()
}

// Complete submits the acting user's work for a task.
func (ws *Workspace) Complete(ctx context.Context, taskID int) error {
	return ws.Workflow.Complete(ctx, ws.User.ID, taskID)
}

// Approve marks a pending submission as completed.
func (ws *Workspace) Approve(ctx context.Context, completionID int) error {
	return ws.Workflow.Approve(ctx, completionID)
}

// StudentTasks returns the acting user's tasks in the given status.
func (ws *Workspace) StudentTasks(status progress.Status) []progress.StudentTask {
	return ws.Engine.StudentTasks(ws.User.ID, status)
}

// ReviewTasks returns the submissions awaiting the acting user's approval.
func (ws *Workspace) ReviewTasks() []progress.ReviewTask {
	return ws.Engine.ReviewTasks(ws.User.ID)
}

// CourseProgress returns the acting user's per-course progress.
func (ws *Workspace) CourseProgress() []progress.CourseProgress {
	return ws.Engine.CourseProgress(ws.User.ID)
}
