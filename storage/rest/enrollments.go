package restapi

import (
	"context"

	"github.com/peerclass/peerclass/core/enrollment"
)

type (
	enrollmentDTO struct {
		EnrollmentID int      `json:"enrollment_id"`
		StudentID    int      `json:"student_id"`
		CourseID     int      `json:"course_id"`
		AssignerID   int      `json:"assigner_id"`
		EnrolledAt   wireDate `json:"enrolled_at"`
		Deadline     wireDate `json:"deadline"`
		CompletedAt  wireTime `json:"completed_at"`
		IsActive     bool     `json:"is_active"`
	}

	enrollmentCreateDTO struct {
		StudentID  int      `json:"student_id"`
		CourseID   int      `json:"course_id"`
		AssignerID int      `json:"assigner_id"`
		Deadline   wireDate `json:"deadline"`
	}

	enrollmentUpdateDTO struct {
		Deadline    *wireDate `json:"deadline,omitempty"`
		CompletedAt *wireTime `json:"completed_at,omitempty"`
		IsActive    *bool     `json:"is_active,omitempty"`
	}
)

func (dto enrollmentDTO) toModel() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:          dto.EnrollmentID,
		StudentID:   dto.StudentID,
		CourseID:    dto.CourseID,
		AssignerID:  dto.AssignerID,
		EnrolledAt:  dto.EnrolledAt.Time,
		Deadline:    dto.Deadline.toNullTime(),
		CompletedAt: dto.CompletedAt.toNullTime(),
		IsActive:    dto.IsActive,
	}
}

type enrollmentRepository struct {
	client *Client
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func (repo *enrollmentRepository) QueryAllEnrollments(ctx context.Context) ([]enrollment.Enrollment, error) {
	var dtos []enrollmentDTO
	if err := repo.client.get(ctx, "/enrollments", &dtos); err != nil {
		return nil, err
	}
	enrollments := make([]enrollment.Enrollment, len(dtos))
	for i, dto := range dtos {
		enrollments[i] = dto.toModel()
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, ne enrollment.NewEnrollment) (enrollment.Enrollment, error) {
	in := enrollmentCreateDTO{
		StudentID:  ne.StudentID,
		CourseID:   ne.CourseID,
		AssignerID: ne.AssignerID,
		Deadline:   newWireDate(ne.Deadline),
	}
	out := new(enrollmentDTO)
	if err := repo.client.post(ctx, "/enrollments", in, out); err != nil {
		return enrollment.Enrollment{}, err
	}
	return out.toModel(), nil
}

func (repo *enrollmentRepository) UpdateEnrollment(ctx context.Context, id int, ue enrollment.UpdateEnrollment) (enrollment.Enrollment, error) {
	in := enrollmentUpdateDTO{IsActive: ue.IsActive}
	if ue.Deadline.Valid {
		deadline := newWireDate(ue.Deadline)
		in.Deadline = &deadline
	}
	if ue.CompletedAt.Valid {
		completedAt := newWireTime(ue.CompletedAt)
		in.CompletedAt = &completedAt
	}
	out := new(enrollmentDTO)
	if err := repo.client.put(ctx, idPath("/enrollments", id), in, out); err != nil {
		return enrollment.Enrollment{}, err
	}
	return out.toModel(), nil
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, id int) error {
	return repo.client.delete(ctx, idPath("/enrollments", id))
}
