package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	"github.com/honeymoneyapp/honeymoney_backend/internal/models"
	"github.com/honeymoneyapp/honeymoney_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReferenceRepository serves the seeded movement-type and payment-type
// catalogs. Both tables are read-only at runtime; writes happen in migrations.
type PgxReferenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxReferenceRepository creates a new repository for reference data.
func newPgxReferenceRepository(pool *pgxpool.Pool) *PgxReferenceRepository {
	return &PgxReferenceRepository{pool: pool}
}

var (
	_ portsrepo.MovementTypeReader = (*PgxReferenceRepository)(nil)
	_ portsrepo.PaymentTypeReader  = (*PgxReferenceRepository)(nil)
)

// FindMovementTypeByID retrieves a movement type by ID.
func (r *PgxReferenceRepository) FindMovementTypeByID(ctx context.Context, movementTypeID string) (*domain.MovementType, error) {
	query := `
		SELECT movement_type_id, name, is_transfer, created_at, last_updated_at
		FROM movement_types
		WHERE movement_type_id = $1;
	`
	var m models.MovementType
	err := r.pool.QueryRow(ctx, query, movementTypeID).Scan(
		&m.MovementTypeID,
		&m.Name,
		&m.IsTransfer,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("movement type not found: " + movementTypeID)
		}
		return nil, fmt.Errorf("failed to find movement type %s: %w", movementTypeID, err)
	}
	mt := mapping.ToDomainMovementType(m)
	return &mt, nil
}

// ListMovementTypes retrieves the whole movement-type vocabulary.
func (r *PgxReferenceRepository) ListMovementTypes(ctx context.Context) ([]domain.MovementType, error) {
	query := `
		SELECT movement_type_id, name, is_transfer, created_at, last_updated_at
		FROM movement_types
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement types: %w", err)
	}
	defer rows.Close()

	var mts []domain.MovementType
	for rows.Next() {
		var m models.MovementType
		if err := rows.Scan(&m.MovementTypeID, &m.Name, &m.IsTransfer, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movement type row: %w", err)
		}
		mts = append(mts, mapping.ToDomainMovementType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading movement type rows: %w", err)
	}
	return mts, nil
}

// FindPaymentTypeByID retrieves a payment type by ID.
func (r *PgxReferenceRepository) FindPaymentTypeByID(ctx context.Context, paymentTypeID string) (*domain.PaymentType, error) {
	query := `
		SELECT payment_type_id, name, created_at, last_updated_at
		FROM payment_types
		WHERE payment_type_id = $1;
	`
	var m models.PaymentType
	err := r.pool.QueryRow(ctx, query, paymentTypeID).Scan(
		&m.PaymentTypeID,
		&m.Name,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment type not found: " + paymentTypeID)
		}
		return nil, fmt.Errorf("failed to find payment type %s: %w", paymentTypeID, err)
	}
	pt := mapping.ToDomainPaymentType(m)
	return &pt, nil
}

// ListPaymentTypes retrieves all payment types.
func (r *PgxReferenceRepository) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	query := `
		SELECT payment_type_id, name, created_at, last_updated_at
		FROM payment_types
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment types: %w", err)
	}
	defer rows.Close()

	var pts []domain.PaymentType
	for rows.Next() {
		var m models.PaymentType
		if err := rows.Scan(&m.PaymentTypeID, &m.Name, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment type row: %w", err)
		}
		pts = append(pts, mapping.ToDomainPaymentType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading payment type rows: %w", err)
	}
	return pts, nil
}
