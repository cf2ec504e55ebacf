package course

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/peerclass/peerclass/core"
)

var ErrNotFound = errors.New("course not found")

// minSearchRatio is the similarity cutoff for fuzzy title matches.
const minSearchRatio = .6

type (
	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
		UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id int) error
	}

	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []Course
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

func (s *Store) List() []Course {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]Course, len(s.records))
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

func (s *Store) Refresh(ctx context.Context) ([]Course, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllCourses(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load courses"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

// Create posts the new course and appends the created record locally.
func (s *Store) Create(ctx context.Context, nc NewCourse) (Course, error) {
	crs, err := s.repo.CreateCourse(ctx, nc)
	if err != nil {
		s.setErr("failed to create course")
		return Course{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = append(s.records, crs)
	s.version++
	return crs, nil
}

// Update submits a partial update, then re-fetches the whole collection.
func (s *Store) Update(ctx context.Context, id int, uc UpdateCourse) error {
	if _, err := s.repo.UpdateCourse(ctx, id, uc); err != nil {
		s.setErr("failed to update course")
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// Delete soft-deletes the course remotely and drops it from the snapshot.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		s.setErr("failed to delete course")
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	records := s.records[:0]
	for _, crs := range s.records {
		if crs.ID != id {
			records = append(records, crs)
		}
	}
	s.records = records
	s.version++
	return nil
}

func (s *Store) GetByID(id int) (Course, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, crs := range s.records {
		if crs.ID == id {
			return crs, nil
		}
	}
	return Course{}, ErrNotFound
}

// Search returns active courses whose title fuzzy-matches the term,
// best matches first.
func (s *Store) Search(term string) []Course {
	term = core.CleanString(term, true)
	if term == "" {
		return nil
	}

	type match struct {
		crs   Course
		ratio float64
	}

	s.mutex.RLock()
	matches := make([]match, 0, len(s.records))
	for _, crs := range s.records {
		if !crs.IsActive {
			continue
		}
		title := strings.ToLower(crs.Title)
		ratio := difflib.NewMatcher(strings.Split(term, ""), strings.Split(title, "")).QuickRatio()
		if strings.Contains(title, term) || ratio >= minSearchRatio {
			matches = append(matches, match{crs, ratio})
		}
	}
	s.mutex.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })
	result := make([]Course, len(matches))
	for i, m := range matches {
		result[i] = m.crs
	}
	return result
}

func (s *Store) setErr(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errText = text
}
