package enrollment

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("enrollment not found")

type (
	Repository interface {
		QueryAllEnrollments(ctx context.Context) ([]Enrollment, error)
		CreateEnrollment(ctx context.Context, ne NewEnrollment) (Enrollment, error)
		UpdateEnrollment(ctx context.Context, id int, ue UpdateEnrollment) (Enrollment, error)
		DeleteEnrollment(ctx context.Context, id int) error
	}

	Store struct {
		repo Repository

		mutex   sync.RWMutex
		records []Enrollment
		version int
		loading bool
		errText string
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, loading: true}
}

func (s *Store) List() []Enrollment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	records := make([]Enrollment, len(s.records))
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

func (s *Store) Refresh(ctx context.Context) ([]Enrollment, error) {
	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	records, err := s.repo.QueryAllEnrollments(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = false
	if err != nil {
		s.errText = "failed to load enrollments"
		return nil, err
	}
	s.records = records
	s.version++
	s.errText = ""
	return records, nil
}

func (s *Store) Create(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	enr, err := s.repo.CreateEnrollment(ctx, ne)
	if err != nil {
		s.setErr("failed to create enrollment")
		return Enrollment{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = append(s.records, enr)
	s.version++
	return enr, nil
}

func (s *Store) Update(ctx context.Context, id int, ue UpdateEnrollment) error {
	if _, err := s.repo.UpdateEnrollment(ctx, id, ue); err != nil {
		s.setErr("failed to update enrollment")
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteEnrollment(ctx, id); err != nil {
		s.setErr("failed to delete enrollment")
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	records := s.records[:0]
	for _, enr := range s.records {
		if enr.ID != id {
			records = append(records, enr)
		}
	}
	s.records = records
	s.version++
	return nil
}

func (s *Store) GetByID(id int) (Enrollment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, enr := range s.records {
		if enr.ID == id {
			return enr, nil
		}
	}
	return Enrollment{}, ErrNotFound
}

// ByStudentID filters the snapshot on the enrolled student.
func (s *Store) ByStudentID(studentID int) []Enrollment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var enrollments []Enrollment
	for _, enr := range s.records {
		if enr.StudentID == studentID {
			enrollments = append(enrollments, enr)
		}
	}
	return enrollments
}

// ByCourseID filters the snapshot on the assigned course.
func (s *Store) ByCourseID(courseID int) []Enrollment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var enrollments []Enrollment
	for _, enr := range s.records {
		if enr.CourseID == courseID {
			enrollments = append(enrollments, enr)
		}
	}
	return enrollments
}

func (s *Store) setErr(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errText = text
}
