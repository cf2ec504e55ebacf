package completion

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("task completion not found")

type (
	Repository interface {
		QueryAllTaskCompletions(ctx context.Context) ([]TaskCompletion, error)
		// CreateTaskCompletion submits a new record; the ID is assigned remotely.
		CreateTaskCompletion(ctx context.Context, tc TaskCompletion) (TaskCompletion, error)
		// UpdateTaskCompletion re-submits the full record under an existing id.
		UpdateTaskCompletion(ctx context.Context, id int, tc TaskCompletion) (TaskCompletion, error)
	}

	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []TaskCompletion
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

func (s *Store) List() []TaskCompletion {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]TaskCompletion, len(s.records))
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

func (s *Store) Refresh(ctx context.Context) ([]TaskCompletion, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllTaskCompletions(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load task completions"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

// Create submits the record, then re-fetches the whole collection so the
// remotely assigned id and any concurrent submissions land locally.
func (s *Store) Create(ctx context.Context, tc TaskCompletion) (TaskCompletion, error) {
	created, err := s.repo.CreateTaskCompletion(ctx, tc)
	if err != nil {
		s.setErr("failed to complete task")
		return TaskCompletion{}, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update re-submits the record under its existing id, then re-fetches.
func (s *Store) Update(ctx context.Context, id int, tc TaskCompletion) error {
	if _, err := s.repo.UpdateTaskCompletion(ctx, id, tc); err != nil {
		s.setErr("failed to approve task")
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

func (s *Store) GetByID(id int) (TaskCompletion, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, tc := range s.records {
		if tc.ID == id {
			return tc, nil
		}
	}
	return TaskCompletion{}, ErrNotFound
}

func (s *Store) setErr(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errText = text
}
