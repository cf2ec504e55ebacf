package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Course is a bundle of tasks a teacher (or peer) can assign to students.
type Course struct {
	ID             int         `json:"id"`
	Title          string      `json:"title"`
	Description    null.String `json:"description"`
	CategoryID     int         `json:"categoryId"`
	TeacherID      int         `json:"teacherId"`
	DeadlineInDays null.Int    `json:"deadlineInDays"`
	IsActive       bool        `json:"isActive"`
}

// NewCourse is the payload for creating a Course.
type NewCourse struct {
	Title          string      `json:"title" validate:"required,min=3,max=50"`
	Description    null.String `json:"description" validate:"omitempty,max=100"`
	CategoryID     int         `json:"categoryId" validate:"required,gt=0"`
	TeacherID      int         `json:"teacherId" validate:"required,gt=0"`
	DeadlineInDays null.Int    `json:"deadlineInDays" validate:"omitempty,gt=0"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	return validate.Struct(nc)
}

// UpdateCourse is the payload for a partial Course update.
// Nil-valued fields are left untouched by the platform.
type UpdateCourse struct {
	Title          string      `json:"title,omitempty" validate:"omitempty,min=3,max=50"`
	Description    null.String `json:"description,omitempty" validate:"omitempty,max=100"`
	CategoryID     int         `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	DeadlineInDays null.Int    `json:"deadlineInDays,omitempty" validate:"omitempty,gt=0"`
	IsActive       *bool       `json:"isActive,omitempty"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	return validate.Struct(uc)
}
