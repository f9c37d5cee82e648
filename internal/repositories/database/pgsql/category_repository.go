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

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, user_id, name, icon, color, movement_type_id, parent_category_id, is_active, created_at, last_updated_at`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Icon,
		&m.Color,
		&m.MovementTypeID,
		&m.ParentCategoryID,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.Icon,
		m.Color,
		m.MovementTypeID,
		m.ParentCategoryID,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category owned by userID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND user_id = $2;
	`
	m, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category not found: " + categoryID)
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// FindCategoryByName retrieves a category by name for uniqueness checks.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string, userID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE LOWER(name) = LOWER($1) AND user_id = $2;
	`
	m, err := scanCategory(r.pool.QueryRow(ctx, query, name, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category not found: " + name)
		}
		return nil, fmt.Errorf("failed to find category %q: %w", name, err)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// ListCategories retrieves a user's categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, onlyActive bool) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
	`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var cs []domain.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		cs = append(cs, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading category rows: %w", err)
	}
	return cs, nil
}

// UpdateCategory updates an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3, is_active = $4, last_updated_at = $5
		WHERE category_id = $6 AND user_id = $7;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.Name,
		m.Icon,
		m.Color,
		m.IsActive,
		m.LastUpdatedAt,
		m.CategoryID,
		m.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category not found: " + m.CategoryID)
	}
	return nil
}

// DeactivateCategory marks a category as inactive.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $1
		WHERE category_id = $2 AND user_id = $3;
	`
	tag, err := r.pool.Exec(ctx, query, now, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category not found: " + categoryID)
	}
	return nil
}
