package restapi

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/task"
)

type (
	taskDTO struct {
		TaskID      int         `json:"task_id"`
		Title       string      `json:"title"`
		Description null.String `json:"description"`
		CourseID    int         `json:"course_id"`
		IsActive    bool        `json:"is_active"`
	}

	taskCreateDTO struct {
		Title       string      `json:"title"`
		Description null.String `json:"description"`
		CourseID    int         `json:"course_id"`
	}

	taskUpdateDTO struct {
		Title       *string `json:"title,omitempty"`
		Description *string `json:"description,omitempty"`
		IsActive    *bool   `json:"is_active,omitempty"`
	}
)

func (dto taskDTO) toModel() task.Task {
	return task.Task{
		ID:          dto.TaskID,
		Title:       dto.Title,
		Description: dto.Description,
		CourseID:    dto.CourseID,
		IsActive:    dto.IsActive,
	}
}

type taskRepository struct {
	client *Client
}

var _ task.Repository = (*taskRepository)(nil)

func (repo *taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	var dtos []taskDTO
	if err := repo.client.get(ctx, "/tasks", &dtos); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, len(dtos))
	for i, dto := range dtos {
		tasks[i] = dto.toModel()
	}
	return tasks, nil
}

func (repo *taskRepository) CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	in := taskCreateDTO{
		Title:       nt.Title,
		Description: nt.Description,
		CourseID:    nt.CourseID,
	}
	out := new(taskDTO)
	if err := repo.client.post(ctx, "/tasks", in, out); err != nil {
		return task.Task{}, err
	}
	return out.toModel(), nil
}

func (repo *taskRepository) UpdateTask(ctx context.Context, id int, ut task.UpdateTask) (task.Task, error) {
	in := taskUpdateDTO{IsActive: ut.IsActive}
	if ut.Title != "" {
		in.Title = &ut.Title
	}
	if ut.Description.Valid {
		in.Description = &ut.Description.String
	}
	out := new(taskDTO)
	if err := repo.client.put(ctx, idPath("/tasks", id), in, out); err != nil {
		return task.Task{}, err
	}
	return out.toModel(), nil
}

func (repo *taskRepository) DeleteTask(ctx context.Context, id int) error {
	return repo.client.delete(ctx, idPath("/tasks", id))
}
