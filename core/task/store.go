package task

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("task not found")

type (
	Repository interface {
		QueryAllTasks(ctx context.Context) ([]Task, error)
		CreateTask(ctx context.Context, nt NewTask) (Task, error)
		UpdateTask(ctx context.Context, id int, ut UpdateTask) (Task, error)
		DeleteTask(ctx context.Context, id int) error
	}

	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []Task
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

func (s *Store) List() []Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]Task, len(s.records))
	copy(records, s.records)
	return records
}

func (s *Store) Version() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.version
}

func (s *Store) Loading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errText
}

func (s *Store) Refresh(ctx context.Context) ([]Task, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllTasks(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load tasks"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

func (s *Store) Create(ctx context.Context, nt NewTask) (Task, error) {
	tsk, err := s.repo.CreateTask(ctx, nt)
	if err != nil {
		s.setErr("failed to create task")
		return Task{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = append(s.records, tsk)
	s.version++
	return tsk, nil
}

func (s *Store) Update(ctx context.Context, id int, ut UpdateTask) error {
	if _, err := s.repo.UpdateTask(ctx, id, ut); err != nil {
		s.setErr("failed to update task")
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		s.setErr("failed to delete task")
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	records := s.records[:0]
	for _, tsk := range s.records {
		if tsk.ID != id {
			records = append(records, tsk)
		}
	}
	s.records = records
	s.version++
	return nil
}

func (s *Store) GetByID(id int) (Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, tsk := range s.records {
		if tsk.ID == id {
			return tsk, nil
		}
	}
	return Task{}, ErrNotFound
}

// ByCourseID filters the snapshot on course membership.
func (s *Store) ByCourseID(courseID int) []Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var tasks []Task
	for _, tsk := range s.records {
		if tsk.CourseID == courseID {
			tasks = append(tasks, tsk)
		}
	}
	return tasks
}

func (s *Store) setErr(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errText = text
}
