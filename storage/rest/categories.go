package restapi

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/peerclass/peerclass/core/category"
)

type categoryDTO struct {
	CategoryID  int         `json:"category_id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	IsActive    bool        `json:"is_active"`
}

func (dto categoryDTO) toModel() category.Category {
	return category.Category{
		ID:          dto.CategoryID,
		Name:        dto.Name,
		Description: dto.Description,
		IsActive:    dto.IsActive,
	}
}

type categoryRepository struct {
	client *Client
}

var _ category.Repository = (*categoryRepository)(nil)

func (repo *categoryRepository) QueryAllCategories(ctx context.Context) ([]category.Category, error) {
	var dtos []categoryDTO
	if err := repo.client.get(ctx, "/categories", &dtos); err != nil {
		return nil, err
	}
	categories := make([]category.Category, len(dtos))
	for i, dto := range dtos {
		categories[i] = dto.toModel()
	}
	return categories, nil
}
