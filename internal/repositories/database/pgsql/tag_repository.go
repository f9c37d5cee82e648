package pgsql

import (
	"context"
	"errors"
	"fmt"
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

type PgxTagRepository struct {
	pool *pgxpool.Pool
}

// newPgxTagRepository creates a new repository for tag data.
func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{pool: pool}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

const tagColumns = `tag_id, user_id, name, color, description, is_active, created_at, last_updated_at`

func scanTag(row pgx.Row) (models.Tag, error) {
	var m models.Tag
	err := row.Scan(
		&m.TagID,
		&m.UserID,
		&m.Name,
		&m.Color,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveTag persists a new tag.
func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	m := mapping.ToModelTag(tag)

	query := `
		INSERT INTO tags (` + tagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TagID,
		m.UserID,
		m.Name,
		m.Color,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save tag %s: %w", m.TagID, err)
	}
	return nil
}

// FindTagByID retrieves a tag owned by userID.
func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string, userID string) (*domain.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE tag_id = $1 AND user_id = $2;
	`
	m, err := scanTag(r.pool.QueryRow(ctx, query, tagID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tag not found: " + tagID)
		}
		return nil, fmt.Errorf("failed to find tag %s: %w", tagID, err)
	}
	t := mapping.ToDomainTag(m)
	return &t, nil
}

// FindTagByName retrieves a tag by name for uniqueness checks.
func (r *PgxTagRepository) FindTagByName(ctx context.Context, name string, userID string) (*domain.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE LOWER(name) = LOWER($1) AND user_id = $2;
	`
	m, err := scanTag(r.pool.QueryRow(ctx, query, name, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tag not found: " + name)
		}
		return nil, fmt.Errorf("failed to find tag %q: %w", name, err)
	}
	t := mapping.ToDomainTag(m)
	return &t, nil
}

// FindTagsByIDs retrieves the subset of the requested tags owned by userID.
func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string, userID string) (map[string]domain.Tag, error) {
	result := make(map[string]domain.Tag, len(tagIDs))
	if len(tagIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE tag_id = ANY($1) AND user_id = $2;
	`
	rows, err := r.pool.Query(ctx, query, tagIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tags by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		result[m.TagID] = mapping.ToDomainTag(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading tag rows: %w", err)
	}
	return result, nil
}

// ListTags retrieves a user's tags ordered by name.
func (r *PgxTagRepository) ListTags(ctx context.Context, userID string, onlyActive bool) ([]domain.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE user_id = $1
	`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var ts []domain.Tag
	for rows.Next() {
		m, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		ts = append(ts, mapping.ToDomainTag(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading tag rows: %w", err)
	}
	return ts, nil
}

// UpdateTag updates an existing tag.
func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	m := mapping.ToModelTag(tag)

	query := `
		UPDATE tags
		SET name = $1, color = $2, description = $3, is_active = $4, last_updated_at = $5
		WHERE tag_id = $6 AND user_id = $7;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.Name,
		m.Color,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.TagID,
		m.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update tag %s: %w", m.TagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tag not found: " + m.TagID)
	}
	return nil
}

// DeactivateTag marks a tag as inactive.
func (r *PgxTagRepository) DeactivateTag(ctx context.Context, tagID string, userID string, now time.Time) error {
	query := `
		UPDATE tags
		SET is_active = FALSE, last_updated_at = $1
		WHERE tag_id = $2 AND user_id = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate tag %s: %w", tagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tag not found: " + tagID)
	}
	return nil
}
