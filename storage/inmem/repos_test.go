package inmemdb

import (
	"context"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/course"
)

func TestCourseRepository(t *testing.T) {
	db, _ := Open()
	repos := db.Repositories()
	ctx := context.Background()

	crs, err := repos.Courses.CreateCourse(ctx, course.NewCourse{
		Title: "Algebra", CategoryID: 1, TeacherID: 1,
	})
	if err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	if crs.ID == 0 || !crs.IsActive {
		t.Errorf("CreateCourse() = %+v, want an active course with a pk", crs)
	}

	// partial update leaves the other fields alone
	updated, err := repos.Courses.UpdateCourse(ctx, crs.ID, course.UpdateCourse{
		Description: null.StringFrom("intro algebra"),
	})
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if updated.Title != "Algebra" || updated.Description.String != "intro algebra" {
		t.Errorf("UpdateCourse() = %+v", updated)
	}

	// deletes are soft: the record stays, deactivated
	if err := repos.Courses.DeleteCourse(ctx, crs.ID); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	records, err := repos.Courses.QueryAllCourses(ctx)
	if err != nil {
		t.Fatalf("QueryAllCourses() error = %v", err)
	}
	if len(records) != 1 || records[0].IsActive {
		t.Errorf("QueryAllCourses() = %+v, want one inactive record", records)
	}

	if _, err := repos.Courses.UpdateCourse(ctx, 99, course.UpdateCourse{Title: "x"}); err != course.ErrNotFound {
		t.Errorf("UpdateCourse(99) error = %v, want ErrNotFound", err)
	}
}
