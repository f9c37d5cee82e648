package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
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
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, name, account_kind, color, initial_balance, current_balance, display_order, is_active, created_at, last_updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountKind,
		&m.Color,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.DisplayOrder,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountKind,
		m.Color,
		m.InitialBalance,
		m.CurrentBalance,
		m.DisplayOrder,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account owned by userID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND user_id = $2;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account not found: " + accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts retrieves the accounts of a user ordered by display order.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
	`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, created_at ASC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// VerifyAccountBalance recomputes initial balance plus the signed sum of the
/// account's transactions. The CASE mirrors the movement polarity rules:
// income credits, everything else non-transfer debits.
func (r *PgxAccountRepository) VerifyAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error) {
	query := `
		SELECT a.initial_balance + COALESCE(SUM(
			CASE
				WHEN mt.is_transfer THEN 0
				WHEN LOWER(mt.name) = 'income' THEN t.amount
				ELSE -t.amount
			END
		), 0)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.account_id
		LEFT JOIN movement_types mt ON mt.movement_type_id = t.movement_type_id
		WHERE a.account_id = $1 AND a.user_id = $2
		GROUP BY a.initial_balance;
	`
	var recomputed decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountID, userID).Scan(&recomputed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError("account not found: " + accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to verify balance for account %s: %w", accountID, err)
	}
	return recomputed, nil
}

// UpdateAccount updates an existing account's details. CurrentBalance is
// deliberately absent from the SET list; only the ledger mutates it.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $1, account_kind = $2, color = $3, display_order = $4, is_active = $5, last_updated_at = $6
		WHERE account_id = $7 AND user_id = $8;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.Name,
		m.AccountKind,
		m.Color,
		m.DisplayOrder,
		m.IsActive,
		m.LastUpdatedAt,
		m.AccountID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account not found: " + m.AccountID)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1
		WHERE account_id = $2 AND user_id = $3;
	`
	tag, err := r.pool.Exec(ctx, query, now, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account not found: " + accountID)
	}
	return nil
}

// UpdateDisplayOrder persists a new display order for each listed account.
func (r *PgxAccountRepository) UpdateDisplayOrder(ctx context.Context, userID string, orderedAccountIDs []string, now time.Time) error {
	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET display_order = $1, last_updated_at = $2
		WHERE account_id = $3 AND user_id = $4;
	`
	for i, accountID := range orderedAccountIDs {
		batch.Queue(query, i, now, accountID, userID)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range orderedAccountIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update display order: %w", err)
		}
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows within tx.
// Rows are locked in account_id order so concurrent units of work acquire
// locks in the same sequence.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading locked account rows: %w", err)
	}

	for _, id := range sorted {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// ApplyBalanceDeltasInTx adds each signed delta to its account balance within
// tx. Callers must hold the row locks from FindAccountsByIDsForUpdate.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `
		UPDATE accounts
		SET current_balance = current_balance + $1, last_updated_at = $2
		WHERE account_id = $3;
	`
	for _, id := range ids {
		tag, err := tx.Exec(ctx, query, deltas[id], now, id)
		if err != nil {
			return fmt.Errorf("failed to apply balance delta to account %s: %w", id, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%w: account %s (rows affected %s)", apperrors.ErrNotFound, id, strconv.FormatInt(tag.RowsAffected(), 10))
		}
	}
	return nil
}
