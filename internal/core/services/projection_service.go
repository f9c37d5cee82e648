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
	"github.com/shopspring/decimal"
)

var (
	ErrProjectionNotFound     = errors.New("projection not found")
	ErrInvalidStateTransition = errors.New("invalid projection state transition")
	ErrFrequencyRequired      = errors.New("recurring projections require a frequency")
)

const defaultNotificationLeadDays = 1

// projectionService schedules planned movements. Projections never touch
// account balances; settling one into the ledger is a separate create call.
type projectionService struct {
	projectionRepo   portsrepo.ProjectionRepositoryFacade
	accountRepo      portsrepo.AccountReader
	movementTypeRepo portsrepo.MovementTypeReader
	categoryRepo     portsrepo.CategoryReader
	paymentTypeRepo  portsrepo.PaymentTypeReader
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(
	projectionRepo portsrepo.ProjectionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	movementTypeRepo portsrepo.MovementTypeReader,
	categoryRepo portsrepo.CategoryReader,
	paymentTypeRepo portsrepo.PaymentTypeReader,
) portssvc.ProjectionSvcFacade {
	return &projectionService{
		projectionRepo:   projectionRepo,
		accountRepo:      accountRepo,
		movementTypeRepo: movementTypeRepo,
		categoryRepo:     categoryRepo,
		paymentTypeRepo:  paymentTypeRepo,
	}
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

// resolveReferences validates the foreign references of a projection write.
// Unlike the ledger, transfer movement types are allowed here since a
// projection carries no balance effect until it is settled.
func (s *projectionService) resolveReferences(ctx context.Context, userID, accountID, movementTypeID, categoryID string, paymentTypeID *string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", ErrReferenceNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s", ErrAccountInactive, accountID)
	}

	if _, err := s.movementTypeRepo.FindMovementTypeByID(ctx, movementTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: movement type %s", ErrReferenceNotFound, movementTypeID)
		}
		return fmt.Errorf("failed to fetch movement type: %w", err)
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s", ErrReferenceNotFound, categoryID)
		}
		return fmt.Errorf("failed to fetch category: %w", err)
	}

	if paymentTypeID != nil {
		if _, err := s.paymentTypeRepo.FindPaymentTypeByID(ctx, *paymentTypeID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: payment type %s", ErrReferenceNotFound, *paymentTypeID)
			}
			return fmt.Errorf("failed to fetch payment type: %w", err)
		}
	}

	return nil
}

// CreateProjection persists a new projection in the pending state.
func (s *projectionService) CreateProjection(ctx context.Context, req dto.CreateProjectionRequest, userID string) (*domain.Projection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: projection amount must be positive", apperrors.ErrValidation)
	}
	if req.Recurring && req.Frequency == nil {
		return nil, ErrFrequencyRequired
	}

	if err := s.resolveReferences(ctx, userID, req.AccountID, req.MovementTypeID, req.CategoryID, req.PaymentTypeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	scheduled := now
	if req.ScheduledDate != nil {
		scheduled = req.ScheduledDate.UTC()
	}
	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}
	leadDays := defaultNotificationLeadDays
	if req.NotificationLeadDays != nil {
		if *req.NotificationLeadDays < 0 {
			return nil, fmt.Errorf("%w: notification lead days must not be negative", apperrors.ErrValidation)
		}
		leadDays = *req.NotificationLeadDays
	}

	projection := domain.Projection{
		ProjectionID:         uuid.NewString(),
		UserID:               userID,
		AccountID:            req.AccountID,
		MovementTypeID:       req.MovementTypeID,
		CategoryID:           req.CategoryID,
		PaymentTypeID:        req.PaymentTypeID,
		Title:                req.Title,
		Description:          req.Description,
		Amount:               req.Amount,
		ScheduledDate:        scheduled,
		DueDate:              req.DueDate,
		Recurring:            req.Recurring,
		Frequency:            req.Frequency,
		NextOccurrence:       req.NextOccurrence,
		Notify:               notify,
		NotificationLeadDays: leadDays,
		State:                domain.ProjectionPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.projectionRepo.SaveProjection(ctx, projection); err != nil {
		logger.Error("Failed to save projection", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save projection: %w", err)
	}

	logger.Info("Projection created", slog.String("projection_id", projection.ProjectionID))
	return &projection, nil
}

// GetProjectionByID retrieves a projection owned by the user.
func (s *projectionService) GetProjectionByID(ctx context.Context, projectionID string, userID string) (*domain.Projection, error) {
	projection, err := s.projectionRepo.FindProjectionByID(ctx, projectionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectionNotFound, projectionID)
		}
		return nil, fmt.Errorf("failed to fetch projection: %w", err)
	}
	return projection, nil
}

// ListProjections retrieves a filtered page of the user's projections.
func (s *projectionService) ListProjections(ctx context.Context, params dto.ListProjectionsParams, userID string) ([]domain.Projection, int64, error) {
	filter := portsrepo.ListProjectionsFilter{
		AccountID:      params.AccountID,
		MovementTypeID: params.MovementTypeID,
		State:          params.State,
		Recurring:      params.Recurring,
		DateFrom:       params.DateFrom,
		DateTo:         params.DateTo,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}
	if filter.State != nil && !domain.ValidProjectionState(*filter.State) {
		return nil, 0, fmt.Errorf("%w: unknown projection state %q", apperrors.ErrValidation, string(*filter.State))
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	projections, total, err := s.projectionRepo.ListProjections(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projections: %w", err)
	}
	return projections, total, nil
}

// ListDueProjections retrieves pending or overdue projections whose scheduled
// or due date falls within the given number of days from now.
func (s *projectionService) ListDueProjections(ctx context.Context, userID string, withinDays int) ([]domain.Projection, error) {
	if withinDays < 0 {
		return nil, fmt.Errorf("%w: withinDays must not be negative", apperrors.ErrValidation)
	}
	deadline := time.Now().UTC().AddDate(0, 0, withinDays)
	projections, err := s.projectionRepo.ListDueProjections(ctx, userID, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to list due projections: %w", err)
	}
	return projections, nil
}

// ListRecurringProjections retrieves the user's recurring projections.
func (s *projectionService) ListRecurringProjections(ctx context.Context, userID string) ([]domain.Projection, error) {
	projections, err := s.projectionRepo.ListRecurringProjections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring projections: %w", err)
	}
	return projections, nil
}

// UpdateProjection patches a projection's details. State is untouched here;
// transitions go through ChangeProjectionState.
func (s *projectionService) UpdateProjection(ctx context.Context, projectionID string, req dto.UpdateProjectionRequest, userID string) (*domain.Projection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetProjectionByID(ctx, projectionID, userID)
	if err != nil {
		return nil, err
	}

	merged := *original
	if req.AccountID != nil {
		merged.AccountID = *req.AccountID
	}
	if req.MovementTypeID != nil {
		merged.MovementTypeID = *req.MovementTypeID
	}
	if req.CategoryID != nil {
		merged.CategoryID = *req.CategoryID
	}
	if req.PaymentTypeID != nil {
		merged.PaymentTypeID = req.PaymentTypeID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: projection amount must be positive", apperrors.ErrValidation)
		}
		merged.Amount = *req.Amount
	}
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.ScheduledDate != nil {
		merged.ScheduledDate = req.ScheduledDate.UTC()
	}
	if req.DueDate != nil {
		merged.DueDate = req.DueDate
	}
	if req.Recurring != nil {
		merged.Recurring = *req.Recurring
	}
	if req.Frequency != nil {
		merged.Frequency = req.Frequency
	}
	if req.NextOccurrence != nil {
		merged.NextOccurrence = req.NextOccurrence
	}
	if req.Notify != nil {
		merged.Notify = *req.Notify
	}
	if req.NotificationLeadDays != nil {
		if *req.NotificationLeadDays < 0 {
			return nil, fmt.Errorf("%w: notification lead days must not be negative", apperrors.ErrValidation)
		}
		merged.NotificationLeadDays = *req.NotificationLeadDays
	}

	if merged.Recurring && merged.Frequency == nil {
		return nil, ErrFrequencyRequired
	}

	if err := s.resolveReferences(ctx, userID, merged.AccountID, merged.MovementTypeID, merged.CategoryID, merged.PaymentTypeID); err != nil {
		return nil, err
	}

	merged.LastUpdatedAt = time.Now().UTC()
	if err := s.projectionRepo.UpdateProjection(ctx, merged); err != nil {
		logger.Error("Failed to update projection", slog.String("error", err.Error()), slog.String("projection_id", projectionID))
		return nil, fmt.Errorf("failed to update projection: %w", err)
	}

	logger.Info("Projection updated", slog.String("projection_id", projectionID))
	return &merged, nil
}

// ChangeProjectionState moves a projection along the allowed state graph.
// Confirming never writes a transaction or touches a balance; settling into
// the ledger is a deliberate second step for the caller.
func (s *projectionService) ChangeProjectionState(ctx context.Context, projectionID string, req dto.ChangeProjectionStateRequest, userID string) (*domain.Projection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidProjectionState(req.State) {
		return nil, fmt.Errorf("%w: unknown projection state %q", apperrors.ErrValidation, string(req.State))
	}

	projection, err := s.GetProjectionByID(ctx, projectionID, userID)
	if err != nil {
		return nil, err
	}

	if !projection.State.CanTransitionTo(req.State) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, projection.State, req.State)
	}

	projection.State = req.State
	projection.LastUpdatedAt = time.Now().UTC()
	if err := s.projectionRepo.UpdateProjection(ctx, *projection); err != nil {
		logger.Error("Failed to change projection state", slog.String("error", err.Error()), slog.String("projection_id", projectionID))
		return nil, fmt.Errorf("failed to change projection state: %w", err)
	}

	logger.Info("Projection state changed", slog.String("projection_id", projectionID), slog.String("state", string(req.State)))
	return projection, nil
}

// DeleteProjection removes a projection.
func (s *projectionService) DeleteProjection(ctx context.Context, projectionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetProjectionByID(ctx, projectionID, userID); err != nil {
		return err
	}

	if err := s.projectionRepo.DeleteProjection(ctx, projectionID, userID); err != nil {
		logger.Error("Failed to delete projection", slog.String("error", err.Error()), slog.String("projection_id", projectionID))
		return fmt.Errorf("failed to delete projection: %w", err)
	}

	logger.Info("Projection deleted", slog.String("projection_id", projectionID))
	return nil
}
