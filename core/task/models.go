package task

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Task is a unit of work within a course.
type Task struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	CourseID    int         `json:"courseId"`
	IsActive    bool        `json:"isActive"`
}

type NewTask struct {
	Title       string      `json:"title" validate:"required,min=1,max=50"`
	Description null.String `json:"description" validate:"omitempty,min=1,max=100"`
	CourseID    int         `json:"courseId" validate:"required,gt=0"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	return validate.Struct(nt)
}

type UpdateTask struct {
	Title       string      `json:"title,omitempty" validate:"omitempty,min=1,max=50"`
	Description null.String `json:"description,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

func (ut *UpdateTask) Validate(validate *validator.Validate) error {
	return validate.Struct(ut)
}
