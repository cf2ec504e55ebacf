package testutil

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/category"
	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
	inmemdb "github.com/peerclass/peerclass/storage/inmem"
)

// PrepareDB returns an empty in-memory backend for one test.
func PrepareDB() *inmemdb.DB {
	db, _ := inmemdb.Open()
	return db
}

func CreateUser(db *inmemdb.DB, name, role string, isActive bool) user.User {
	first, last := splitName(name)
	uname := strings.ToLower(first)
	return db.AddUser(user.User{
		Username:  uname,
		FirstName: first,
		LastName:  last,
		Email:     uname + "@test.cd",
		Role:      role,
		IsActive:  isActive,
	})
}

func CreateCategory(db *inmemdb.DB, name string) category.Category {
	return db.AddCategory(category.Category{Name: name, IsActive: true})
}

func CreateCourse(db *inmemdb.DB, title string, categoryID, teacherID int, isActive bool) course.Course {
	return db.AddCourse(course.Course{
		Title:      title,
		CategoryID: categoryID,
		TeacherID:  teacherID,
		IsActive:   isActive,
	})
}

func CreateTask(db *inmemdb.DB, title string, courseID int, isActive bool) task.Task {
	return db.AddTask(task.Task{Title: title, CourseID: courseID, IsActive: isActive})
}

func CreateEnrollment(db *inmemdb.DB, studentID, courseID, assignerID int, isActive bool) enrollment.Enrollment {
	return db.AddEnrollment(enrollment.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		AssignerID: assignerID,
		EnrolledAt: time.Now().UTC(),
		IsActive:   isActive,
	})
}

func CreateCompletion(db *inmemdb.DB, taskID, enrollmentID int, status completion.Status) completion.TaskCompletion {
	tc := completion.TaskCompletion{
		TaskID:       taskID,
		EnrollmentID: enrollmentID,
		Status:       status,
	}
	if status == completion.StatusApproved {
		tc.CompletedAt = null.TimeFrom(time.Now().UTC())
	}
	return db.AddCompletion(tc)
}

func splitName(name string) (first, last string) {
	parts := strings.SplitN(name, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return
}
