package dto

import (
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectionRequest defines the data needed to create a projection.
type CreateProjectionRequest struct {
	AccountID            string                      `json:"accountID" binding:"required"`
	MovementTypeID       string                      `json:"movementTypeID" binding:"required"`
	CategoryID           string                      `json:"categoryID" binding:"required"`
	PaymentTypeID        *string                     `json:"paymentTypeID"`
	Title                string                      `json:"title" binding:"required"`
	Description          string                      `json:"description"`
	Amount               decimal.Decimal             `json:"amount" binding:"required"`
	ScheduledDate        *time.Time                  `json:"scheduledDate"`
	DueDate              *time.Time                  `json:"dueDate"`
	Recurring            bool                        `json:"recurring"`
	Frequency            *domain.RecurrenceFrequency `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	NextOccurrence       *time.Time                  `json:"nextOccurrence"`
	Notify               *bool                       `json:"notify"`
	NotificationLeadDays *int                        `json:"notificationLeadDays"`
}

// UpdateProjectionRequest is the patch applied to an existing projection.
// Absent fields keep their original values. State changes go through the
// dedicated state endpoint, not this patch.
type UpdateProjectionRequest struct {
	AccountID            *string                     `json:"accountID"`
	MovementTypeID       *string                     `json:"movementTypeID"`
	CategoryID           *string                     `json:"categoryID"`
	PaymentTypeID        *string                     `json:"paymentTypeID"`
	Title                *string                     `json:"title"`
	Description          *string                     `json:"description"`
	Amount               *decimal.Decimal            `json:"amount"`
	ScheduledDate        *time.Time                  `json:"scheduledDate"`
	DueDate              *time.Time                  `json:"dueDate"`
	Recurring            *bool                       `json:"recurring"`
	Frequency            *domain.RecurrenceFrequency `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	NextOccurrence       *time.Time                  `json:"nextOccurrence"`
	Notify               *bool                       `json:"notify"`
	NotificationLeadDays *int                        `json:"notificationLeadDays"`
}

// ChangeProjectionStateRequest carries the requested state transition.
type ChangeProjectionStateRequest struct {
	State domain.ProjectionState `json:"state" binding:"required,projectionstate"`
}

// ListProjectionsParams defines query parameters for listing projections.
type ListProjectionsParams struct {
	AccountID      *string                 `form:"accountID"`
	MovementTypeID *string                 `form:"movementTypeID"`
	State          *domain.ProjectionState `form:"state"`
	Recurring      *bool                   `form:"recurring"`
	DateFrom       *time.Time              `form:"dateFrom" time_format:"2006-01-02"`
	DateTo         *time.Time              `form:"dateTo" time_format:"2006-01-02"`
	Limit          int                     `form:"limit,default=50"`
	Offset         int                     `form:"offset,default=0"`
}

// ProjectionResponse defines the data returned for a projection.
type ProjectionResponse struct {
	ProjectionID         string                      `json:"projectionID"`
	AccountID            string                      `json:"accountID"`
	MovementTypeID       string                      `json:"movementTypeID"`
	CategoryID           string                      `json:"categoryID"`
	PaymentTypeID        *string                     `json:"paymentTypeID,omitempty"`
	Title                string                      `json:"title"`
	Description          string                      `json:"description"`
	Amount               decimal.Decimal             `json:"amount"`
	ScheduledDate        time.Time                   `json:"scheduledDate"`
	DueDate              *time.Time                  `json:"dueDate,omitempty"`
	Recurring            bool                        `json:"recurring"`
	Frequency            *domain.RecurrenceFrequency `json:"frequency,omitempty"`
	NextOccurrence       *time.Time                  `json:"nextOccurrence,omitempty"`
	Notify               bool                        `json:"notify"`
	NotificationLeadDays int                         `json:"notificationLeadDays"`
	State                domain.ProjectionState      `json:"state"`
	CreatedAt            time.Time                   `json:"createdAt"`
	LastUpdatedAt        time.Time                   `json:"lastUpdatedAt"`
}

// ToProjectionResponse converts a domain.Projection to a response DTO.
func ToProjectionResponse(p *domain.Projection) ProjectionResponse {
	return ProjectionResponse{
		ProjectionID:         p.ProjectionID,
		AccountID:            p.AccountID,
		MovementTypeID:       p.MovementTypeID,
		CategoryID:           p.CategoryID,
		PaymentTypeID:        p.PaymentTypeID,
		Title:                p.Title,
		Description:          p.Description,
		Amount:               p.Amount,
		ScheduledDate:        p.ScheduledDate,
		DueDate:              p.DueDate,
		Recurring:            p.Recurring,
		Frequency:            p.Frequency,
		NextOccurrence:       p.NextOccurrence,
		Notify:               p.Notify,
		NotificationLeadDays: p.NotificationLeadDays,
		State:                p.State,
		CreatedAt:            p.CreatedAt,
		LastUpdatedAt:        p.LastUpdatedAt,
	}
}

// ToProjectionResponses converts a slice of projections to response DTOs.
func ToProjectionResponses(ps []domain.Projection) []ProjectionResponse {
	res := make([]ProjectionResponse, len(ps))
	for i := range ps {
		res[i] = ToProjectionResponse(&ps[i])
	}
	return res
}

// ListProjectionsResponse wraps a projection page with its total count.
type ListProjectionsResponse struct {
	Projections []ProjectionResponse `json:"projections"`
	Total       int64                `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}
