package course

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	records []Course
	nextID  int

	queryErr   error
	queryCalls int
}

func (r *stubRepo) QueryAllCourses(context.Context) ([]Course, error) {
	r.queryCalls++
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return append([]Course{}, r.records...), nil
}

func (r *stubRepo) CreateCourse(_ context.Context, nc NewCourse) (Course, error) {
	r.nextID++
	crs := Course{
		ID:         r.nextID,
		Title:      nc.Title,
		CategoryID: nc.CategoryID,
		TeacherID:  nc.TeacherID,
		IsActive:   true,
	}
	r.records = append(r.records, crs)
	return crs, nil
}

func (r *stubRepo) UpdateCourse(_ context.Context, id int, uc UpdateCourse) (Course, error) {
	for i, crs := range r.records {
		if crs.ID == id {
			if uc.Title != "" {
				crs.Title = uc.Title
			}
			if uc.IsActive != nil {
				crs.IsActive = *uc.IsActive
			}
			r.records[i] = crs
			return crs, nil
		}
	}
	return Course{}, ErrNotFound
}

func (r *stubRepo) DeleteCourse(_ context.Context, id int) error {
	for i, crs := range r.records {
		if crs.ID == id {
			r.records[i].IsActive = false
		}
	}
	return nil
}

func seededRepo() *stubRepo {
	return &stubRepo{
		records: []Course{
			{ID: 1, Title: "Algebra", TeacherID: 1, IsActive: true},
			{ID: 2, Title: "Biology", TeacherID: 1, IsActive: true},
		},
		nextID: 2,
	}
}

func TestStore_Refresh(t *testing.T) {
	repo := seededRepo()
	store := NewStore(repo)
	ctx := context.Background()

	if !store.Loading() {
		t.Error("Loading() = false before the first fetch")
	}

	records, err := store.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	assert.ElementsMatch(t, repo.records, records)
	if store.Loading() {
		t.Error("Loading() = true after the fetch settled")
	}
	if store.Version() != 1 {
		t.Errorf("Version() = %d, want 1", store.Version())
	}

	// a failed refresh keeps the previous snapshot and reports the error
	repo.queryErr = errors.New("boom")
	if _, err = store.Refresh(ctx); err == nil {
		t.Fatal("Refresh() error = nil, want error")
	}
	assert.ElementsMatch(t, repo.records, store.List())
	if store.Err() != "failed to load courses" {
		t.Errorf("Err() = %q", store.Err())
	}
	if store.Version() != 1 {
		t.Errorf("Version() = %d after failed refresh, want 1", store.Version())
	}

	// the error clears on the next successful refresh
	repo.queryErr = nil
	if _, err = store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if store.Err() != "" {
		t.Errorf("Err() = %q, want empty", store.Err())
	}
}

func TestStore_Create(t *testing.T) {
	repo := seededRepo()
	store := NewStore(repo)
	ctx := context.Background()
	if _, err := store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	queries := repo.queryCalls

	crs, err := store.Create(ctx, NewCourse{Title: "Chemistry", CategoryID: 1, TeacherID: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// created record is appended locally, without a re-fetch
	if repo.queryCalls != queries {
		t.Errorf("Create() re-fetched the collection (%d extra queries)", repo.queryCalls-queries)
	}
	if got, err := store.GetByID(crs.ID); err != nil || got.Title != "Chemistry" {
		t.Errorf("GetByID(%d) = (%+v, %v)", crs.ID, got, err)
	}
}

func TestStore_Update(t *testing.T) {
	repo := seededRepo()
	store := NewStore(repo)
	ctx := context.Background()
	if _, err := store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	queries := repo.queryCalls
	version := store.Version()

	if err := store.Update(ctx, 1, UpdateCourse{Title: "Algebra II"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// updates re-fetch the whole collection
	if repo.queryCalls != queries+1 {
		t.Errorf("Update() queries = %d, want %d", repo.queryCalls, queries+1)
	}
	if store.Version() <= version {
		t.Error("Update() did not bump the version")
	}
	if got, _ := store.GetByID(1); got.Title != "Algebra II" {
		t.Errorf("GetByID(1).Title = %q, want \"Algebra II\"", got.Title)
	}
}

func TestStore_Delete(t *testing.T) {
	repo := seededRepo()
	store := NewStore(repo)
	ctx := context.Background()
	if _, err := store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	queries := repo.queryCalls

	if err := store.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// deletes drop the record locally, without a re-fetch
	if repo.queryCalls != queries {
		t.Errorf("Delete() re-fetched the collection (%d extra queries)", repo.queryCalls-queries)
	}
	if _, err := store.GetByID(1); err != ErrNotFound {
		t.Errorf("GetByID(1) error = %v, want ErrNotFound", err)
	}
	if len(store.List()) != 1 {
		t.Errorf("List() holds %d records, want 1", len(store.List()))
	}
}

func TestStore_Search(t *testing.T) {
	repo := seededRepo()
	repo.records = append(repo.records,
		Course{ID: 3, Title: "Advanced Algebra", TeacherID: 1, IsActive: true},
		Course{ID: 4, Title: "Algebre", TeacherID: 1, IsActive: false}, // archived
	)
	store := NewStore(repo)
	if _, err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	tests := []struct {
		name    string
		term    string
		wantIDs []int
	}{
		{name: "empty term", term: "", wantIDs: []int{}},
		{name: "substring", term: "algebra", wantIDs: []int{1, 3}},
		{name: "fuzzy", term: "algbra", wantIDs: []int{1}},
		{name: "case and whitespace", term: "  ALGEBRA ", wantIDs: []int{1, 3}},
		{name: "no match", term: "zoology", wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Search(tt.term)
			ids := make([]int, 0, len(got))
			for _, crs := range got {
				ids = append(ids, crs.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}
