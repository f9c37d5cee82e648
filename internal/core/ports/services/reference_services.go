package services

import (
	"context"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

// MovementTypeSvc exposes the seeded movement type catalog.
type MovementTypeSvc interface {
	ListMovementTypes(ctx context.Context) ([]domain.MovementType, error)
	GetMovementTypeByID(ctx context.Context, movementTypeID string) (*domain.MovementType, error)
}

// PaymentTypeSvc exposes the seeded payment type catalog.
type PaymentTypeSvc interface {
	ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error)
	GetPaymentTypeByID(ctx context.Context, paymentTypeID string) (*domain.PaymentType, error)
}

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, movementTypeID *string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for categories
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, categoryID string, userID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}

// TagReaderSvc defines read operations for tags
type TagReaderSvc interface {
	GetTagByID(ctx context.Context, tagID string, userID string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
}

// TagWriterSvc defines write operations for tags
type TagWriterSvc interface {
	CreateTag(ctx context.Context, req dto.CreateTagRequest, userID string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tagID string, req dto.UpdateTagRequest, userID string) (*domain.Tag, error)
	DeactivateTag(ctx context.Context, tagID string, userID string) error
}

// TagSvcFacade combines all tag-related service interfaces
type TagSvcFacade interface {
	TagReaderSvc
	TagWriterSvc
}
