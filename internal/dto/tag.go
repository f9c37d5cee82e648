package dto

import (
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
)

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// UpdateTagRequest is the patch applied to an existing tag.
type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID         string    `json:"tagID"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToTagResponse converts a domain.Tag to a response DTO.
func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		TagID:         t.TagID,
		Name:          t.Name,
		Color:         t.Color,
		Description:   t.Description,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToTagResponses converts a slice of tags to response DTOs.
func ToTagResponses(ts []domain.Tag) []TagResponse {
	res := make([]TagResponse, len(ts))
	for i := range ts {
		res[i] = ToTagResponse(&ts[i])
	}
	return res
}
