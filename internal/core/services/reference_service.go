package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
)

// movementTypeService exposes the seeded movement type vocabulary.
type movementTypeService struct {
	repo portsrepo.MovementTypeReader
}

// NewMovementTypeService creates a new MovementTypeService.
func NewMovementTypeService(repo portsrepo.MovementTypeReader) portssvc.MovementTypeSvc {
	return &movementTypeService{repo: repo}
}

var _ portssvc.MovementTypeSvc = (*movementTypeService)(nil)

func (s *movementTypeService) ListMovementTypes(ctx context.Context) ([]domain.MovementType, error) {
	movementTypes, err := s.repo.ListMovementTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement types: %w", err)
	}
	return movementTypes, nil
}

func (s *movementTypeService) GetMovementTypeByID(ctx context.Context, movementTypeID string) (*domain.MovementType, error) {
	movementType, err := s.repo.FindMovementTypeByID(ctx, movementTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: movement type %s", ErrReferenceNotFound, movementTypeID)
		}
		return nil, fmt.Errorf("failed to fetch movement type: %w", err)
	}
	return movementType, nil
}

// paymentTypeService exposes the seeded payment type catalog.
type paymentTypeService struct {
	repo portsrepo.PaymentTypeReader
}

// NewPaymentTypeService creates a new PaymentTypeService.
func NewPaymentTypeService(repo portsrepo.PaymentTypeReader) portssvc.PaymentTypeSvc {
	return &paymentTypeService{repo: repo}
}

var _ portssvc.PaymentTypeSvc = (*paymentTypeService)(nil)

func (s *paymentTypeService) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	paymentTypes, err := s.repo.ListPaymentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment types: %w", err)
	}
	return paymentTypes, nil
}

func (s *paymentTypeService) GetPaymentTypeByID(ctx context.Context, paymentTypeID string) (*domain.PaymentType, error) {
	paymentType, err := s.repo.FindPaymentTypeByID(ctx, paymentTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment type %s", ErrReferenceNotFound, paymentTypeID)
		}
		return nil, fmt.Errorf("failed to fetch payment type: %w", err)
	}
	return paymentType, nil
}
