package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
)

var ErrCategoryNotFound = errors.New("category not found")

type categoryService struct {
	categoryRepo     portsrepo.CategoryRepositoryFacade
	movementTypeRepo portsrepo.MovementTypeReader
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, movementTypeRepo portsrepo.MovementTypeReader) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo:     categoryRepo,
		movementTypeRepo: movementTypeRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory persists a new category. Names are unique per user, and a
// parent category must exist and belong to the same user.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.movementTypeRepo.FindMovementTypeByID(ctx, req.MovementTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: movement type %s", ErrReferenceNotFound, req.MovementTypeID)
		}
		return nil, fmt.Errorf("failed to fetch movement type: %w", err)
	}

	existing, err := s.categoryRepo.FindCategoryByName(ctx, req.Name, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category name %q", apperrors.ErrDuplicate, req.Name)
	}

	if req.ParentCategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.ParentCategoryID, userID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category %s", ErrReferenceNotFound, *req.ParentCategoryID)
			}
			return nil, fmt.Errorf("failed to fetch parent category: %w", err)
		}
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		Icon:             req.Icon,
		Color:            req.Color,
		MovementTypeID:   req.MovementTypeID,
		ParentCategoryID: req.ParentCategoryID,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a category owned by the user.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves the user's active categories, optionally narrowed
// to one movement type.
func (s *categoryService) ListCategories(ctx context.Context, userID string, movementTypeID *string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if movementTypeID == nil {
		return categories, nil
	}
	filtered := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.MovementTypeID == *movementTypeID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// UpdateCategory updates an existing category's details.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.GetCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		existing, err := s.categoryRepo.FindCategoryByName(ctx, *req.Name, userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: category name %q", apperrors.ErrDuplicate, *req.Name)
		}
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeactivateCategory marks a category as inactive. Existing transactions keep
// their reference; only new writes are blocked by the referential guard.
func (s *categoryService) DeactivateCategory(ctx context.Context, categoryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetCategoryByID(ctx, categoryID, userID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to deactivate category: %w", err)
	}

	return nil
}
