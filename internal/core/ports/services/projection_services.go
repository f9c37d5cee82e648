package services

import (
	"context"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

// ProjectionReaderSvc defines read operations for projections
type ProjectionReaderSvc interface {
	// GetProjectionByID retrieves a specific projection owned by the user.
	GetProjectionByID(ctx context.Context, projectionID string, userID string) (*domain.Projection, error)

	// ListProjections retrieves a filtered, paginated page of projections.
	ListProjections(ctx context.Context, params dto.ListProjectionsParams, userID string) ([]domain.Projection, int64, error)

	// ListDueProjections retrieves pending or overdue projections whose
	// scheduled or due date falls within the given number of days.
	ListDueProjections(ctx context.Context, userID string, withinDays int) ([]domain.Projection, error)

	// ListRecurringProjections retrieves the user's recurring projections.
	ListRecurringProjections(ctx context.Context, userID string) ([]domain.Projection, error)
}

// ProjectionWriterSvc defines write operations for projections
type ProjectionWriterSvc interface {
	// CreateProjection persists a new projection in the pending state.
	CreateProjection(ctx context.Context, req dto.CreateProjectionRequest, userID string) (*domain.Projection, error)

	// UpdateProjection patches a projection's details.
	UpdateProjection(ctx context.Context, projectionID string, req dto.UpdateProjectionRequest, userID string) (*domain.Projection, error)

	// ChangeProjectionState moves a projection along the allowed state graph.
	ChangeProjectionState(ctx context.Context, projectionID string, req dto.ChangeProjectionStateRequest, userID string) (*domain.Projection, error)

	// DeleteProjection removes a projection. Balances are never affected.
	DeleteProjection(ctx context.Context, projectionID string, userID string) error
}

// ProjectionSvcFacade combines all projection-related service interfaces
type ProjectionSvcFacade interface {
	ProjectionReaderSvc
	ProjectionWriterSvc
}
