package restapi

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/course"
)

type (
	courseDTO struct {
		CourseID       int         `json:"course_id"`
		Title          string      `json:"title"`
		Description    null.String `json:"description"`
		CategoryID     int         `json:"category_id"`
		TeacherID      int         `json:"teacher_id"`
		DeadlineInDays null.Int    `json:"deadline_in_days"`
		IsActive       bool        `json:"is_active"`
	}

	courseCreateDTO struct {
		Title          string      `json:"title"`
		Description    null.String `json:"description"`
		CategoryID     int         `json:"category_id"`
		TeacherID      int         `json:"teacher_id"`
		DeadlineInDays null.Int    `json:"deadline_in_days"`
	}

	courseUpdateDTO struct {
		Title          *string `json:"title,omitempty"`
		Description    *string `json:"description,omitempty"`
		CategoryID     *int    `json:"category_id,omitempty"`
		DeadlineInDays *int    `json:"deadline_in_days,omitempty"`
		IsActive       *bool   `json:"is_active,omitempty"`
	}
)

func (dto courseDTO) toModel() course.Course {
	return course.Course{
		ID:             dto.CourseID,
		Title:          dto.Title,
		Description:    dto.Description,
		CategoryID:     dto.CategoryID,
		TeacherID:      dto.TeacherID,
		DeadlineInDays: dto.DeadlineInDays,
		IsActive:       dto.IsActive,
	}
}

type courseRepository struct {
	client *Client
}

var _ course.Repository = (*courseRepository)(nil)

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var dtos []courseDTO
	if err := repo.client.get(ctx, "/courses", &dtos); err != nil {
		return nil, err
	}
	courses := make([]course.Course, len(dtos))
	for i, dto := range dtos {
		courses[i] = dto.toModel()
	}
	return courses, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	in := courseCreateDTO{
		Title:          nc.Title,
		Description:    nc.Description,
		CategoryID:     nc.CategoryID,
		TeacherID:      nc.TeacherID,
		DeadlineInDays: nc.DeadlineInDays,
	}
	out := new(courseDTO)
	if err := repo.client.post(ctx, "/courses", in, out); err != nil {
		return course.Course{}, err
	}
	return out.toModel(), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	in := courseUpdateDTO{IsActive: uc.IsActive}
	if uc.Title != "" {
		in.Title = &uc.Title
	}
	if uc.Description.Valid {
		in.Description = &uc.Description.String
	}
	if uc.CategoryID != 0 {
		in.CategoryID = &uc.CategoryID
	}
	if uc.DeadlineInDays.Valid {
		in.DeadlineInDays = &uc.DeadlineInDays.Int
	}
	out := new(courseDTO)
	if err := repo.client.put(ctx, idPath("/courses", id), in, out); err != nil {
		return course.Course{}, err
	}
	return out.toModel(), nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) error {
	return repo.client.delete(ctx, idPath("/courses", id))
}
