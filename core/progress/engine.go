package progress

import (
	"sync"

	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

type (
	// Engine binds the record stores to the pure derivation functions.
	// Results are recomputed only when a store's collection version has
	// changed since they were last derived; in between, cached views are
	// served.
	Engine struct {
		users       *user.Store
		courses     *course.Store
		tasks       *task.Store
		enrollments *enrollment.Store
		completions *completion.Store

		mutex         sync.Mutex
		versions      [5]int
		snapshot      Collections
		studentCache  map[studentKey][]StudentTask
		reviewCache   map[int][]ReviewTask
		progressCache map[int][]CourseProgress
	}

	studentKey struct {
		studentID int
		status    Status
	}
)

func NewEngine(
	users *user.Store,
	courses *course.Store,
	tasks *task.Store,
	enrollments *enrollment.Store,
	completions *completion.Store,
) *Engine {
	return &Engine{
		users:         users,
		courses:       courses,
		tasks:         tasks,
		enrollments:   enrollments,
		completions:   completions,
		versions:      [5]int{-1, -1, -1, -1, -1},
		studentCache:  make(map[studentKey][]StudentTask),
		reviewCache:   make(map[int][]ReviewTask),
		progressCache: make(map[int][]CourseProgress),
	}
}

// Loading reports whether any of the five stores is still fetching.
// Derived views must not be trusted while it returns true.
func (e *Engine) Loading() bool {
	return e.users.Loading() ||
		e.courses.Loading() ||
		e.tasks.Loading() ||
		e.enrollments.Loading() ||
		e.completions.Loading()
}

// Err returns the first store error encountered, if any.
func (e *Engine) Err() string {
	for _, errText := range []string{
		e.tasks.Err(),
		e.completions.Err(),
		e.enrollments.Err(),
		e.courses.Err(),
		e.users.Err(),
	} {
		if errText != "" {
			return errText
		}
	}
	return ""
}

// StudentTasks returns the student's tasks currently in the given status.
func (e *Engine) StudentTasks(studentID int, status Status) []StudentTask {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sync()

	key := studentKey{studentID, status}
	if cached, ok := e.studentCache[key]; ok {
		return cached
	}
	derived := StudentTasks(e.snapshot, studentID, status)
	e.studentCache[key] = derived
	return derived
}

// ReviewTasks returns the submissions awaiting the assigner's approval.
func (e *Engine) ReviewTasks(assignerID int) []ReviewTask {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sync()

	if cached, ok := e.reviewCache[assignerID]; ok {
		return cached
	}
	derived := ReviewTasks(e.snapshot, assignerID)
	e.reviewCache[assignerID] = derived
	return derived
}

// CourseProgress returns the student's per-enrollment progress summary.
func (e *Engine) CourseProgress(studentID int) []CourseProgress {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sync()

	if cached, ok := e.progressCache[studentID]; ok {
		return cached
	}
	derived := Courses(e.snapshot, studentID)
	e.progressCache[studentID] = derived
	return derived
}

// sync re-snapshots the collections and invalidates the caches whenever
// any store version moved. Callers must hold e.mutex.
func (e *Engine) sync() {
	versions := [5]int{
		e.users.Version(),
		e.courses.Version(),
		e.tasks.Version(),
		e.enrollments.Version(),
		e.completions.Version(),
	}
	if versions == e.versions {
		return
	}

	e.snapshot = Collections{
		Users:       e.users.List(),
		Courses:     e.courses.List(),
		Tasks:       e.tasks.List(),
		Enrollments: e.enrollments.List(),
		Completions: e.completions.List(),
	}
	e.versions = versions
	e.studentCache = make(map[studentKey][]StudentTask)
	e.reviewCache = make(map[int][]ReviewTask)
	e.progressCache = make(map[int][]CourseProgress)
}
