package repositories

import (
	"context"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceDelta is a signed balance change to apply to one account as part of
// a ledger unit of work.
type BalanceDelta struct {
	AccountID string
	Amount    decimal.Decimal
	// EnforceFloor rejects the whole unit of work with
	// domain.ErrInsufficientBalance if the resulting balance would fall below
	// zero. Set for debit applications, never for reversals.
	EnforceFloor bool
}

// ListTransactionsFilter narrows ListTransactions results.
type ListTransactionsFilter struct {
	AccountID      *string
	MovementTypeID *string
	Confirmed      *bool
	DateFrom       *time.Time
	DateTo         *time.Time
	Limit          int
	Offset         int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID, with its
	// tag associations populated.
	FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of a user's
	// transactions ordered by date descending, plus the total match count.
	ListTransactions(ctx context.Context, userID string, filter ListTransactionsFilter) ([]domain.Transaction, int64, error)

	// SummarizeByMovementType aggregates confirmed transactions per movement
	// type over [from, to].
	SummarizeByMovementType(ctx context.Context, userID string, from, to time.Time) ([]domain.MovementSummary, error)

	// HasTransactionsForAccount reports whether any transaction references
	// the account.
	HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error)
}

// TransactionWriter defines the ledger's atomic write operations. Each call
// is one unit of work: the balance mutation and the row write commit together
// or not at all.
type TransactionWriter interface {
	// SaveTransaction locks the account, applies delta (floor-checked when
	// requested), and inserts the transaction row with its tag links.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta BalanceDelta) error

	// UpdateTransaction locks the original and target accounts, applies the
	// reversal then the new delta, and persists the patched row. A floor
	// violation on the new delta rolls back the reversal too.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, reversal BalanceDelta, applied BalanceDelta) error

	// DeleteTransaction locks the account, applies the reversal, removes tag
	// links and deletes the row.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal BalanceDelta) error
}

// TransactionTagWriter manages the transaction/tag association set.
type TransactionTagWriter interface {
	// AddTransactionTags associates tags with a transaction. Existing
	// associations are silently skipped.
	AddTransactionTags(ctx context.Context, transactionID string, tagIDs []string, now time.Time) error

	// RemoveTransactionTags removes tag associations. If any requested tag is
	// not associated it fails without removing anything.
	RemoveTransactionTags(ctx context.Context, transactionID string, tagIDs []string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTagWriter
}
