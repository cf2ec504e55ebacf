package inmemdb

import (
	"sync"

	"github.com/peerclass/peerclass/core/category"
	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
	"github.com/peerclass/peerclass/core/workspace"
)

// DB is an in-memory stand-in for the remote platform, used by tests
// and offline runs. Each table keeps insertion order so collection
// iteration is deterministic.
type (
	DB struct {
		mutex sync.RWMutex

		pkCount     int
		users       []user.User
		categories  []category.Category
		courses     []course.Course
		tasks       []task.Task
		enrollments []enrollment.Enrollment
		completions []completion.TaskCompletion
	}
)

func Open() (*DB, error) {
	return &DB{}, nil
}

// Repositories exposes the DB as the full set of session backends.
func (db *DB) Repositories() workspace.Repositories {
	return workspace.Repositories{
		Users:       &userRepository{db: db},
		Categories:  &categoryRepository{db: db},
		Courses:     &courseRepository{db: db},
		Tasks:       &taskRepository{db: db},
		Enrollments: &enrollmentRepository{db: db},
		Completions: &completionRepository{db: db},
	}
}

func (db *DB) nextPK() int {
	db.pkCount++
	return db.pkCount
}

// Seed helpers; each assigns the next primary key.

func (db *DB) AddUser(usr user.User) user.User {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	usr.ID = db.nextPK()
	db.users = append(db.users, usr)
	return usr
}

func (db *DB) AddCategory(cat category.Category) category.Category {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	cat.ID = db.nextPK()
	db.categories = append(db.categories, cat)
	return cat
}

func (db *DB) AddCourse(crs course.Course) course.Course {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	crs.ID = db.nextPK()
	db.courses = append(db.courses, crs)
	return crs
}

func (db *DB) AddTask(tsk task.Task) task.Task {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	tsk.ID = db.nextPK()
	db.tasks = append(db.tasks, tsk)
	return tsk
}

func (db *DB) AddEnrollment(enr enrollment.Enrollment) enrollment.Enrollment {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	enr.ID = db.nextPK()
	db.enrollments = append(db.enrollments, enr)
	return enr
}

func (db *DB) AddCompletion(tc completion.TaskCompletion) completion.TaskCompletion {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	tc.ID = db.nextPK()
	db.completions = append(db.completions, tc)
	return tc
}
