package inmemdb

import (
	"context"
	"time"

	"github.com/peerclass/peerclass/core/category"
	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/course"
	"github.com/peerclass/peerclass/core/enrollment"
	"github.com/peerclass/peerclass/core/task"
	"github.com/peerclass/peerclass/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	users := make([]user.User, len(repo.db.users))
	copy(users, repo.db.users)
	return users, nil
}

type categoryRepository struct {
	db *DB
}

var _ category.Repository = (*categoryRepository)(nil)

func (repo *categoryRepository) QueryAllCategories(ctx context.Context) ([]category.Category, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	categories := make([]category.Category, len(repo.db.categories))
	copy(categories, repo.db.categories)
	return categories, nil
}

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil)

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	courses := make([]course.Course, len(repo.db.courses))
	copy(courses, repo.db.courses)
	return courses, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	crs := course.Course{
		ID:             repo.db.nextPK(),
		Title:          nc.Title,
		Description:    nc.Description,
		CategoryID:     nc.CategoryID,
		TeacherID:      nc.TeacherID,
		DeadlineInDays: nc.DeadlineInDays,
		IsActive:       true,
	}
	repo.db.courses = append(repo.db.courses, crs)
	return crs, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.courses {
		crs := &repo.db.courses[i]
		if crs.ID != id {
			continue
		}
		if uc.Title != "" {
			crs.Title = uc.Title
		}
		if uc.Description.Valid {
			crs.Description = uc.Description
		}
		if uc.CategoryID != 0 {
			crs.CategoryID = uc.CategoryID
		}
		if uc.DeadlineInDays.Valid {
			crs.DeadlineInDays = uc.DeadlineInDays
		}
		if uc.IsActive != nil {
			crs.IsActive = *uc.IsActive
		}
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.courses {
		if repo.db.courses[i].ID == id {
			repo.db.courses[i].IsActive = false // soft delete
			return nil
		}
	}
	return course.ErrNotFound
}

type taskRepository struct {
	db *DB
}

var _ task.Repository = (*taskRepository)(nil)

func (repo *taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	tasks := make([]task.Task, len(repo.db.tasks))
	copy(tasks, repo.db.tasks)
	return tasks, nil
}

func (repo *taskRepository) CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	tsk := task.Task{
		ID:          repo.db.nextPK(),
		Title:       nt.Title,
		Description: nt.Description,
		CourseID:    nt.CourseID,
		IsActive:    true,
	}
	repo.db.tasks = append(repo.db.tasks, tsk)
	return tsk, nil
}

func (repo *taskRepository) UpdateTask(ctx context.Context, id int, ut task.UpdateTask) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.tasks {
		tsk := &repo.db.tasks[i]
		if tsk.ID != id {
			continue
		}
		if ut.Title != "" {
			tsk.Title = ut.Title
		}
		if ut.Description.Valid {
			tsk.Description = ut.Description
		}
		if ut.IsActive != nil {
			tsk.IsActive = *ut.IsActive
		}
		return *tsk, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) DeleteTask(ctx context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.tasks {
		if repo.db.tasks[i].ID == id {
			repo.db.tasks[i].IsActive = false // soft delete
			return nil
		}
	}
	return task.ErrNotFound
}

type enrollmentRepository struct {
	db *DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func (repo *enrollmentRepository) QueryAllEnrollments(ctx context.Context) ([]enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	enrollments := make([]enrollment.Enrollment, len(repo.db.enrollments))
	copy(enrollments, repo.db.enrollments)
	return enrollments, nil
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, ne enrollment.NewEnrollment) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	enr := enrollment.Enrollment{
		ID:         repo.db.nextPK(),
		StudentID:  ne.StudentID,
		CourseID:   ne.CourseID,
		AssignerID: ne.AssignerID,
		EnrolledAt: time.Now().UTC(),
		Deadline:   ne.Deadline,
		IsActive:   true,
	}
	repo.db.enrollments = append(repo.db.enrollments, enr)
	return enr, nil
}

func (repo *enrollmentRepository) UpdateEnrollment(ctx context.Context, id int, ue enrollment.UpdateEnrollment) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.enrollments {
		enr := &repo.db.enrollments[i]
		if enr.ID != id {
			continue
		}
		if ue.Deadline.Valid {
			enr.Deadline = ue.Deadline
		}
		if ue.CompletedAt.Valid {
			enr.CompletedAt = ue.CompletedAt
		}
		if ue.IsActive != nil {
			enr.IsActive = *ue.IsActive
		}
		return *enr, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.enrollments {
		if repo.db.enrollments[i].ID == id {
			repo.db.enrollments[i].IsActive = false // soft delete
			return nil
		}
	}
	return enrollment.ErrNotFound
}

type completionRepository struct {
	db *DB
}

var _ completion.Repository = (*completionRepository)(nil)

func (repo *completionRepository) QueryAllTaskCompletions(ctx context.Context) ([]completion.TaskCompletion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	completions := make([]completion.TaskCompletion, len(repo.db.completions))
	copy(completions, repo.db.completions)
	return completions, nil
}

func (repo *completionRepository) CreateTaskCompletion(ctx context.Context, tc completion.TaskCompletion) (completion.TaskCompletion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	tc.ID = repo.db.nextPK()
	repo.db.completions = append(repo.db.completions, tc)
	return tc, nil
}

func (repo *completionRepository) UpdateTaskCompletion(ctx context.Context, id int, tc completion.TaskCompletion) (completion.TaskCompletion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.completions {
		if repo.db.completions[i].ID != id {
			continue
		}
		tc.ID = id
		repo.db.completions[i] = tc
		return tc, nil
	}
	return completion.TaskCompletion{}, completion.ErrNotFound
}
