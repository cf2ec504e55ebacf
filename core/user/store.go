package user

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("user not found")

type (
	// Repository is the remote users collection. The platform only lets
	// clients list accounts; registration and edits happen elsewhere.
	Repository interface {
		QueryAllUsers(ctx context.Context) ([]User, error)
	}

	// Store holds the last fetched snapshot of the users collection.
	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []User
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

// List returns a copy of the current snapshot.
func (s *Store) List() []User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]User, len(s.records))
	copy(records, s.records)
	return records
}

// Version increases on every snapshot change.
func (s *Store) Version() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.version
}

// Loading reports whether a fetch is in flight (or none has completed yet).
func (s *Store) Loading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loading
}

// Err returns the last fetch error text, if any.
func (s *Store) Err() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errText
}

// Refresh replaces the snapshot with the remote collection.
// On failure the previous snapshot is kept untouched.
func (s *Store) Refresh(ctx context.Context) ([]User, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllUsers(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load users"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

// GetByID looks a user up in the local snapshot.
func (s *Store) GetByID(id int) (User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, usr := range s.records {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}
