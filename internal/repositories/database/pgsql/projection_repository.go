package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	"github.com/honeymoneyapp/honeymoney_backend/internal/models"
	"github.com/honeymoneyapp/honeymoney_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectionRepository struct {
	pool *pgxpool.Pool
}

// newPgxProjectionRepository creates a new repository for projection data.
func newPgxProjectionRepository(pool *pgxpool.Pool) portsrepo.ProjectionRepositoryFacade {
	return &PgxProjectionRepository{pool: pool}
}

var _ portsrepo.ProjectionRepositoryFacade = (*PgxProjectionRepository)(nil)

const projectionColumns = `projection_id, user_id, account_id, movement_type_id, category_id, payment_type_id, title, description, amount, scheduled_date, due_date, recurring, frequency, next_occurrence, notify, notification_lead_days, state, created_at, last_updated_at`

func scanProjection(row pgx.Row) (models.Projection, error) {
	var m models.Projection
	err := row.Scan(
		&m.ProjectionID,
		&m.UserID,
		&m.AccountID,
		&m.MovementTypeID,
		&m.CategoryID,
		&m.PaymentTypeID,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.ScheduledDate,
		&m.DueDate,
		&m.Recurring,
		&m.Frequency,
		&m.NextOccurrence,
		&m.Notify,
		&m.NotificationLeadDays,
		&m.State,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveProjection persists a new projection.
func (r *PgxProjectionRepository) SaveProjection(ctx context.Context, projection domain.Projection) error {
	m := mapping.ToModelProjection(projection)

	query := `
		INSERT INTO projections (` + projectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProjectionID,
		m.UserID,
		m.AccountID,
		m.MovementTypeID,
		m.CategoryID,
		m.PaymentTypeID,
		m.Title,
		m.Description,
		m.Amount,
		m.ScheduledDate,
		m.DueDate,
		m.Recurring,
		m.Frequency,
		m.NextOccurrence,
		m.Notify,
		m.NotificationLeadDays,
		m.State,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: projection with ID %s already exists", apperrors.ErrDuplicate, m.ProjectionID)
		}
		return fmt.Errorf("failed to save projection %s: %w", m.ProjectionID, err)
	}
	return nil
}

// FindProjectionByID retrieves a projection owned by userID.
func (r *PgxProjectionRepository) FindProjectionByID(ctx context.Context, projectionID string, userID string) (*domain.Projection, error) {
	query := `
		SELECT ` + projectionColumns + `
		FROM projections
		WHERE projection_id = $1 AND user_id = $2;
	`
	m, err := scanProjection(r.pool.QueryRow(ctx, query, projectionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("projection not found: " + projectionID)
		}
		return nil, fmt.Errorf("failed to find projection %s: %w", projectionID, err)
	}
	p := mapping.ToDomainProjection(m)
	return &p, nil
}

// ListProjections retrieves a filtered page ordered by scheduled date
// ascending, plus the total match count.
func (r *PgxProjectionRepository) ListProjections(ctx context.Context, userID string, filter portsrepo.ListProjectionsFilter) ([]domain.Projection, int64, error) {
	where := ` WHERE user_id = $1`
	args := []interface{}{userID}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where += ` AND ` + clause + ` $` + strconv.Itoa(len(args))
	}
	if filter.AccountID != nil {
		addArg("account_id =", *filter.AccountID)
	}
	if filter.MovementTypeID != nil {
		addArg("movement_type_id =", *filter.MovementTypeID)
	}
	if filter.State != nil {
		addArg("state =", string(*filter.State))
	}
	if filter.Recurring != nil {
		addArg("recurring =", *filter.Recurring)
	}
	if filter.DateFrom != nil {
		addArg("scheduled_date >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("scheduled_date <=", *filter.DateTo)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projections`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projections: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT ` + projectionColumns + `
		FROM projections` + where + `
		ORDER BY scheduled_date ASC, created_at ASC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projections: %w", err)
	}
	defer rows.Close()

	var ms []models.Projection
	for rows.Next() {
		m, err := scanProjection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan projection row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading projection rows: %w", err)
	}
	return mapping.ToDomainProjectionSlice(ms), total, nil
}

// ListDueProjections retrieves pending or overdue, notification-enabled
// projections whose scheduled or due date falls on or before the deadline.
func (r *PgxProjectionRepository) ListDueProjections(ctx context.Context, userID string, deadline time.Time) ([]domain.Projection, error) {
	query := `
		SELECT ` + projectionColumns + `
		FROM projections
		WHERE user_id = $1
			AND state IN ('PENDING', 'OVERDUE')
			AND notify = TRUE
			AND (scheduled_date <= $2 OR (due_date IS NOT NULL AND due_date <= $2))
		ORDER BY scheduled_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, userID, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to list due projections: %w", err)
	}
	defer rows.Close()

	var ms []models.Projection
	for rows.Next() {
		m, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading projection rows: %w", err)
	}
	return mapping.ToDomainProjectionSlice(ms), nil
}

// ListRecurringProjections retrieves pending recurring projections ordered by
// next occurrence.
func (r *PgxProjectionRepository) ListRecurringProjections(ctx context.Context, userID string) ([]domain.Projection, error) {
	query := `
		SELECT ` + projectionColumns + `
		FROM projections
		WHERE user_id = $1 AND recurring = TRUE AND state = 'PENDING'
		ORDER BY next_occurrence ASC NULLS LAST, scheduled_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring projections: %w", err)
	}
	defer rows.Close()

	var ms []models.Projection
	for rows.Next() {
		m, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading projection rows: %w", err)
	}
	return mapping.ToDomainProjectionSlice(ms), nil
}

// UpdateProjection updates an existing projection.
func (r *PgxProjectionRepository) UpdateProjection(ctx context.Context, projection domain.Projection) error {
	m := mapping.ToModelProjection(projection)

	query := `
		UPDATE projections
		SET account_id = $1, movement_type_id = $2, category_id = $3, payment_type_id = $4,
			title = $5, description = $6, amount = $7, scheduled_date = $8, due_date = $9,
			recurring = $10, frequency = $11, next_occurrence = $12, notify = $13,
			notification_lead_days = $14, state = $15, last_updated_at = $16
		WHERE projection_id = $17 AND user_id = $18;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.MovementTypeID,
		m.CategoryID,
		m.PaymentTypeID,
		m.Title,
		m.Description,
		m.Amount,
		m.ScheduledDate,
		m.DueDate,
		m.Recurring,
		m.Frequency,
		m.NextOccurrence,
		m.Notify,
		m.NotificationLeadDays,
		m.State,
		m.LastUpdatedAt,
		m.ProjectionID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update projection %s: %w", m.ProjectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("projection not found: " + m.ProjectionID)
	}
	return nil
}

// DeleteProjection removes a projection owned by userID.
func (r *PgxProjectionRepository) DeleteProjection(ctx context.Context, projectionID string, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projections WHERE projection_id = $1 AND user_id = $2;`, projectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete projection %s: %w", projectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("projection not found: " + projectionID)
	}
	return nil
}
