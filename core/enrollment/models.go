package enrollment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Enrollment records that an assigner assigned a course to a student.
// Removal is a soft delete; the record itself is never purged.
type Enrollment struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"studentId"`
	CourseID    int       `json:"courseId"`
	AssignerID  int       `json:"assignerId"`
	EnrolledAt  time.Time `json:"enrolledAt"`
	Deadline    null.Time `json:"deadline"`
	CompletedAt null.Time `json:"completedAt"`
	IsActive    bool      `json:"isActive"`
}

type NewEnrollment struct {
	StudentID  int       `json:"studentId" validate:"required,gt=0"`
	CourseID   int       `json:"courseId" validate:"required,gt=0"`
	AssignerID int       `json:"assignerId" validate:"required,gt=0"`
	Deadline   null.Time `json:"deadline"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	return validate.Struct(ne)
}

type UpdateEnrollment struct {
	Deadline    null.Time `json:"deadline,omitempty"`
	CompletedAt null.Time `json:"completedAt,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

func (ue *UpdateEnrollment) Validate(validate *validator.Validate) error {
	return validate.Struct(ue)
}
