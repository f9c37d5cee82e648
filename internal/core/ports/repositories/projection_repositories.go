package repositories

import (
	"context"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
)

// ListProjectionsFilter narrows ListProjections results.
type ListProjectionsFilter struct {
	AccountID      *string
	MovementTypeID *string
	State          *domain.ProjectionState
	Recurring      *bool
	DateFrom       *time.Time
	DateTo         *time.Time
	Limit          int
	Offset         int
}

// ProjectionReader defines read operations for projection data.
type ProjectionReader interface {
	// FindProjectionByID retrieves a projection owned by userID.
	FindProjectionByID(ctx context.Context, projectionID string, userID string) (*domain.Projection, error)

	// ListProjections retrieves a filtered, paginated list of a user's
	// projections ordered by scheduled date ascending, plus the total count.
	ListProjections(ctx context.Context, userID string, filter ListProjectionsFilter) ([]domain.Projection, int64, error)

	// ListDueProjections retrieves pending, notification-enabled projections
	// whose scheduled or due date falls on or before the deadline, ordered by
	// scheduled date ascending.
	ListDueProjections(ctx context.Context, userID string, deadline time.Time) ([]domain.Projection, error)

	// ListRecurringProjections retrieves pending recurring projections
	// ordered by next occurrence ascending.
	ListRecurringProjections(ctx context.Context, userID string) ([]domain.Projection, error)
}

// ProjectionWriter defines write operations for projection data. Projections
// never carry a balance effect, so no unit-of-work coupling exists here.
type ProjectionWriter interface {
	// SaveProjection persists a new projection.
	SaveProjection(ctx context.Context, projection domain.Projection) error

	// UpdateProjection updates an existing projection.
	UpdateProjection(ctx context.Context, projection domain.Projection) error

	// DeleteProjection removes a projection owned by userID.
	DeleteProjection(ctx context.Context, projectionID string, userID string) error
}

// ProjectionRepositoryFacade combines all projection repository interfaces.
type ProjectionRepositoryFacade interface {
	ProjectionReader
	ProjectionWriter
}
