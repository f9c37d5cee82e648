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

var ErrTagNotFound = errors.New("tag not found")

type tagService struct {
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo portsrepo.TagRepositoryFacade) portssvc.TagSvcFacade {
	return &tagService{tagRepo: tagRepo}
}

var _ portssvc.TagSvcFacade = (*tagService)(nil)

// CreateTag persists a new tag. Names are unique per user.
func (s *tagService) CreateTag(ctx context.Context, req dto.CreateTagRequest, userID string) (*domain.Tag, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.tagRepo.FindTagByName(ctx, req.Name, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: tag name %q", apperrors.ErrDuplicate, req.Name)
	}

	now := time.Now().UTC()
	tag := domain.Tag{
		TagID:       uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		logger.Error("Failed to save tag", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}

	logger.Info("Tag created", slog.String("tag_id", tag.TagID))
	return &tag, nil
}

// GetTagByID retrieves a tag owned by the user.
func (s *tagService) GetTagByID(ctx context.Context, tagID string, userID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTagNotFound, tagID)
		}
		return nil, fmt.Errorf("failed to fetch tag: %w", err)
	}
	return tag, nil
}

// ListTags retrieves the user's active tags.
func (s *tagService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag updates an existing tag's details.
func (s *tagService) UpdateTag(ctx context.Context, tagID string, req dto.UpdateTagRequest, userID string) (*domain.Tag, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tag, err := s.GetTagByID(ctx, tagID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != tag.Name {
		existing, err := s.tagRepo.FindTagByName(ctx, *req.Name, userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check tag name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: tag name %q", apperrors.ErrDuplicate, *req.Name)
		}
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}
	tag.LastUpdatedAt = time.Now().UTC()

	if err := s.tagRepo.UpdateTag(ctx, *tag); err != nil {
		logger.Error("Failed to update tag", slog.String("error", err.Error()), slog.String("tag_id", tagID))
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// DeactivateTag marks a tag as inactive. Existing associations survive.
func (s *tagService) DeactivateTag(ctx context.Context, tagID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetTagByID(ctx, tagID, userID); err != nil {
		return err
	}

	if err := s.tagRepo.DeactivateTag(ctx, tagID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate tag", slog.String("error", err.Error()), slog.String("tag_id", tagID))
		return fmt.Errorf("failed to deactivate tag: %w", err)
	}

	return nil
}
