package dto

import (
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	MovementTypeID   string  `json:"movementTypeID" binding:"required"`
	ParentCategoryID *string `json:"parentCategoryID"`
}

// UpdateCategoryRequest is the patch applied to an existing category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"isActive"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID       string    `json:"categoryID"`
	Name             string    `json:"name"`
	Icon             string    `json:"icon"`
	Color            string    `json:"color"`
	MovementTypeID   string    `json:"movementTypeID"`
	ParentCategoryID *string   `json:"parentCategoryID,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to a response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		Icon:             c.Icon,
		Color:            c.Color,
		MovementTypeID:   c.MovementTypeID,
		ParentCategoryID: c.ParentCategoryID,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		LastUpdatedAt:    c.LastUpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories to response DTOs.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cs))
	for i := range cs {
		res[i] = ToCategoryResponse(&cs[i])
	}
	return res
}
