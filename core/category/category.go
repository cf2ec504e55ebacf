package category

import (
	"context"
	"errors"
	"sync"

	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("category not found")

// Category is a reference table entry used to group courses.
type Category struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	IsActive    bool        `json:"isActive"`
}

type (
	Repository interface {
		QueryAllCategories(ctx context.Context) ([]Category, error)
	}

	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []Category
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

func (s *Store) List() []Category {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]Category, len(s.records))
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

func (s *Store) Refresh(ctx context.Context) ([]Category, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllCategories(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load categories"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

func (s *Store) GetByID(id int) (Category, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, cat := range s.records {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}
