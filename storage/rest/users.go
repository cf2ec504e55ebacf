package restapi

import (
	"context"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/user"
)

type (
	roleDTO struct {
		RoleID int    `json:"role_id"`
		Name   string `json:"name"`
	}

	userDTO struct {
		UserID    int     `json:"user_id"`
		Username  string  `json:"username"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Email     string  `json:"email"`
		IsActive  bool    `json:"is_active"`
		Role      roleDTO `json:"role"`
	}
)

func (dto userDTO) toModel() user.User {
	return user.User{
		ID:        dto.UserID,
		Username:  dto.Username,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Role:      core.CleanString(dto.Role.Name, true),
		IsActive:  dto.IsActive,
	}
}

type userRepository struct {
	client *Client
}

var _ user.Repository = (*userRepository)(nil)

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var dtos []userDTO
	if err := repo.client.get(ctx, "/users", &dtos); err != nil {
		return nil, err
	}
	users := make([]user.User, len(dtos))
	for i, dto := range dtos {
		users[i] = dto.toModel()
	}
	return users, nil
}
