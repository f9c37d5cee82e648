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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository dependency supplies the row locking and balance
// mutation used inside each unit of work.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, account_id, movement_type_id, category_id, payment_type_id, amount, description, date, confirmed, notes, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.MovementTypeID,
		&m.CategoryID,
		&m.PaymentTypeID,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.Confirmed,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// checkAndMergeDeltas folds the deltas of one unit of work into a per-account
// map, verifying every floor-checked delta against the locked balances first.
// Floor checks see the combined effect on their account, so an update that
// reverses and reapplies on the same account is judged on the net result.
func checkAndMergeDeltas(locked map[string]domain.Account, deltas ...portsrepo.BalanceDelta) (map[string]decimal.Decimal, error) {
	merged := make(map[string]decimal.Decimal, len(deltas))
	for _, d := range deltas {
		merged[d.AccountID] = merged[d.AccountID].Add(d.Amount)
	}
	for _, d := range deltas {
		if !d.EnforceFloor {
			continue
		}
		acc, ok := locked[d.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, d.AccountID)
		}
		if acc.CurrentBalance.Add(merged[d.AccountID]).IsNegative() {
			return nil, fmt.Errorf("%w: account %s", domain.ErrInsufficientBalance, d.AccountID)
		}
	}
	return merged, nil
}

func accountIDsOf(deltas ...portsrepo.BalanceDelta) []string {
	seen := make(map[string]struct{}, len(deltas))
	ids := make([]string, 0, len(deltas))
	for _, d := range deltas {
		if _, ok := seen[d.AccountID]; !ok {
			seen[d.AccountID] = struct{}{}
			ids = append(ids, d.AccountID)
		}
	}
	return ids
}

// SaveTransaction inserts a transaction row and applies its balance delta in
// one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta portsrepo.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(delta))
	if err != nil {
		return err
	}
	merged, err := checkAndMergeDeltas(locked, delta)
	if err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, merged, txn.LastUpdatedAt); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	if _, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.MovementTypeID,
		m.CategoryID,
		m.PaymentTypeID,
		m.Amount,
		m.Description,
		m.Date,
		m.Confirmed,
		m.Notes,
		m.CreatedAt,
		m.LastUpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := insertTagLinks(ctx, tx, txn.TransactionID, txn.TagIDs, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction reverses the original balance effect, applies the new one
// and persists the patched row, all in one database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, reversal portsrepo.BalanceDelta, applied portsrepo.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(reversal, applied))
	if err != nil {
		return err
	}
	merged, err := checkAndMergeDeltas(locked, reversal, applied)
	if err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, merged, txn.LastUpdatedAt); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $1, movement_type_id = $2, category_id = $3, payment_type_id = $4,
			amount = $5, description = $6, date = $7, confirmed = $8, notes = $9, last_updated_at = $10
		WHERE transaction_id = $11 AND user_id = $12;
	`
	tag, err := tx.Exec(ctx, query,
		m.AccountID,
		m.MovementTypeID,
		m.CategoryID,
		m.PaymentTypeID,
		m.Amount,
		m.Description,
		m.Date,
		m.Confirmed,
		m.Notes,
		m.LastUpdatedAt,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found: " + m.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction reverses the balance effect, removes tag links and deletes
// the row, all in one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal portsrepo.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(reversal))
	if err != nil {
		return err
	}
	merged, err := checkAndMergeDeltas(locked, reversal)
	if err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, merged, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return fmt.Errorf("failed to delete tag links for transaction %s: %w", txn.TransactionID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, txn.TransactionID, txn.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found: " + txn.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its tag associations.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	tagsByTxn, err := r.loadTagLinks(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn.TagIDs = tagsByTxn[transactionID]
	return &txn, nil
}

// ListTransactions retrieves a filtered, paginated page ordered by date
// descending, plus the total match count.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int64, error) {
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
	if filter.Confirmed != nil {
		addArg("confirmed =", *filter.Confirmed)
	}
	if filter.DateFrom != nil {
		addArg("date >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("date <=", *filter.DateTo)
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions` + where + `
		ORDER BY date DESC, created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading transaction rows: %w", err)
	}

	txns := mapping.ToDomainTransactionSlice(ms)
	ids := make([]string, len(txns))
	for i := range txns {
		ids[i] = txns[i].TransactionID
	}
	tagsByTxn, err := r.loadTagLinks(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range txns {
		txns[i].TagIDs = tagsByTxn[txns[i].TransactionID]
	}
	return txns, total, nil
}

// SummarizeByMovementType aggregates confirmed transactions per movement type
// over [from, to].
func (r *PgxTransactionRepository) SummarizeByMovementType(ctx context.Context, userID string, from, to time.Time) ([]domain.MovementSummary, error) {
	query := `
		SELECT mt.movement_type_id, mt.name, mt.is_transfer, SUM(t.amount), COUNT(*)
		FROM transactions t
		JOIN movement_types mt ON mt.movement_type_id = t.movement_type_id
		WHERE t.user_id = $1 AND t.confirmed = TRUE AND t.date >= $2 AND t.date <= $3
		GROUP BY mt.movement_type_id, mt.name, mt.is_transfer
		ORDER BY mt.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	var summaries []domain.MovementSummary
	for rows.Next() {
		var s domain.MovementSummary
		if err := rows.Scan(&s.MovementType.MovementTypeID, &s.MovementType.Name, &s.MovementType.IsTransfer, &s.TotalAmount, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading summary rows: %w", err)
	}
	return summaries, nil
}

// HasTransactionsForAccount reports whether any transaction references the
// account.
func (r *PgxTransactionRepository) HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transactions for account %s: %w", accountID, err)
	}
	return exists, nil
}

// AddTransactionTags associates tags with a transaction. Existing links are
// silently skipped via ON CONFLICT.
func (r *PgxTransactionRepository) AddTransactionTags(ctx context.Context, transactionID string, tagIDs []string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTagLinks(ctx, tx, transactionID, tagIDs, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RemoveTransactionTags removes tag links. If any requested tag is not
// associated the whole operation is rolled back.
func (r *PgxTransactionRepository) RemoveTransactionTags(ctx context.Context, transactionID string, tagIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1 AND tag_id = ANY($2);`, transactionID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to remove tag links for transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() != int64(len(tagIDs)) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrConflict, transactionID)
	}
	return r.Commit(ctx, tx)
}

// insertTagLinks queues one insert per tag link, skipping duplicates.
func insertTagLinks(ctx context.Context, tx pgx.Tx, transactionID string, tagIDs []string, now time.Time) error {
	if len(tagIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_tags (transaction_id, tag_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (transaction_id, tag_id) DO NOTHING;
	`
	for _, tagID := range tagIDs {
		batch.Queue(query, transactionID, tagID, now)
	}

	br := tx.SendBatch(ctx, batch)
	for range tagIDs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert tag link for transaction %s: %w", transactionID, err)
		}
	}
	return br.Close()
}

// loadTagLinks fetches tag IDs for the given transactions keyed by
// transaction ID.
func (r *PgxTransactionRepository) loadTagLinks(ctx context.Context, transactionIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT transaction_id, tag_id
		FROM transaction_tags
		WHERE transaction_id = ANY($1)
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var txnID, tagID string
		if err := rows.Scan(&txnID, &tagID); err != nil {
			return nil, fmt.Errorf("failed to scan tag link row: %w", err)
		}
		result[txnID] = append(result[txnID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading tag link rows: %w", err)
	}
	return result, nil
}
