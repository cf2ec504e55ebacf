package restapi

import (
	"context"

	"github.com/peerclass/peerclass/core/completion"
)

type (
	// The wire format has no dedicated status field: `is_active` false
	// means "submitted, awaiting approval" and true means "approved".
	// It is translated to completion.Status at this boundary.
	completionDTO struct {
		TaskCompletionID int      `json:"task_completion_id"`
		EnrollmentID     int      `json:"enrollment_id"`
		TaskID           int      `json:"task_id"`
		CompletedAt      wireTime `json:"completed_at"`
		IsActive         bool     `json:"is_active"`
	}

	completionCreateDTO struct {
		EnrollmentID int      `json:"enrollment_id"`
		TaskID       int      `json:"task_id"`
		CompletedAt  wireTime `json:"completed_at"`
		IsActive     bool     `json:"is_active"`
	}
)

func (dto completionDTO) toModel() completion.TaskCompletion {
	status := completion.StatusPending
	if dto.IsActive {
		status = completion.StatusApproved
	}
	return completion.TaskCompletion{
		ID:           dto.TaskCompletionID,
		TaskID:       dto.TaskID,
		EnrollmentID: dto.EnrollmentID,
		Status:       status,
		CompletedAt:  dto.CompletedAt.toNullTime(),
	}
}

func toCompletionCreateDTO(tc completion.TaskCompletion) completionCreateDTO {
	return completionCreateDTO{
		EnrollmentID: tc.EnrollmentID,
		TaskID:       tc.TaskID,
		CompletedAt:  newWireTime(tc.CompletedAt),
		IsActive:     tc.Approved(),
	}
}

type completionRepository struct {
	client *Client
}

var _ completion.Repository = (*completionRepository)(nil)

func (repo *completionRepository) QueryAllTaskCompletions(ctx context.Context) ([]completion.TaskCompletion, error) {
	var dtos []completionDTO
	if err := repo.client.get(ctx, "/task_completion", &dtos); err != nil {
		return nil, err
	}
	completions := make([]completion.TaskCompletion, len(dtos))
	for i, dto := range dtos {
		completions[i] = dto.toModel()
	}
	return completions, nil
}

func (repo *completionRepository) CreateTaskCompletion(ctx context.Context, tc completion.TaskCompletion) (completion.TaskCompletion, error) {
	out := new(completionDTO)
	if err := repo.client.post(ctx, "/task_completion", toCompletionCreateDTO(tc), out); err != nil {
		return completion.TaskCompletion{}, err
	}
	return out.toModel(), nil
}

func (repo *completionRepository) UpdateTaskCompletion(ctx context.Context, id int, tc completion.TaskCompletion) (completion.TaskCompletion, error) {
	out := new(completionDTO)
	if err := repo.client.put(ctx, idPath("/task_completion", id), toCompletionCreateDTO(tc), out); err != nil {
		return completion.TaskCompletion{}, err
	}
	return out.toModel(), nil
}
