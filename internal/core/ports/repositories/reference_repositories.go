package repositories

import (
	"context"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
)

// MovementTypeReader looks up the fixed movement-type vocabulary.
type MovementTypeReader interface {
	// FindMovementTypeByID retrieves a movement type by ID.
	FindMovementTypeByID(ctx context.Context, movementTypeID string) (*domain.MovementType, error)

	// ListMovementTypes retrieves the whole vocabulary.
	ListMovementTypes(ctx context.Context) ([]domain.MovementType, error)
}

// PaymentTypeReader looks up the global payment-type table.
type PaymentTypeReader interface {
	// FindPaymentTypeByID retrieves a payment type by ID.
	FindPaymentTypeByID(ctx context.Context, paymentTypeID string) (*domain.PaymentType, error)

	// ListPaymentTypes retrieves all payment types.
	ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error)
}

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a category owned by userID.
	FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by name for uniqueness checks.
	FindCategoryByName(ctx context.Context, name string, userID string) (*domain.Category, error)

	// ListCategories retrieves a user's categories ordered by name.
	ListCategories(ctx context.Context, userID string, onlyActive bool) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error
}

// CategoryRepositoryFacade combines category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// TagReader defines read operations for tag data.
type TagReader interface {
	// FindTagByID retrieves a tag owned by userID.
	FindTagByID(ctx context.Context, tagID string, userID string) (*domain.Tag, error)

	// FindTagByName retrieves a tag by name for uniqueness checks.
	FindTagByName(ctx context.Context, name string, userID string) (*domain.Tag, error)

	// FindTagsByIDs retrieves the subset of the requested tags owned by
	// userID, keyed by tag ID.
	FindTagsByIDs(ctx context.Context, tagIDs []string, userID string) (map[string]domain.Tag, error)

	// ListTags retrieves a user's tags ordered by name.
	ListTags(ctx context.Context, userID string, onlyActive bool) ([]domain.Tag, error)
}

// TagWriter defines write operations for tag data.
type TagWriter interface {
	SaveTag(ctx context.Context, tag domain.Tag) error
	UpdateTag(ctx context.Context, tag domain.Tag) error
	DeactivateTag(ctx context.Context, tagID string, userID string, now time.Time) error
}

// TagRepositoryFacade combines tag repository interfaces.
type TagRepositoryFacade interface {
	TagReader
	TagWriter
}
