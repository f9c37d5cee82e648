package repositories

import (
	"context"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID.
	FindAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts of a user ordered by display order.
	// When onlyActive is set, soft-deleted accounts are filtered out.
	ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error)

	// VerifyAccountBalance recomputes initial balance plus the signed sum of
	// the account's transactions, for reconciliation against CurrentBalance.
	VerifyAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error)
}

// AccountWriter defines write operations for account data. None of these
// touch CurrentBalance; balance mutation belongs to the transaction ledger.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// UpdateDisplayOrder persists a new display order for each listed account.
	UpdateDisplayOrder(ctx context.Context, userID string, orderedAccountIDs []string, now time.Time) error
}

// AccountTransactionSupport defines the balance-store operations used inside
// a ledger unit of work. Callers must hold the row locks before applying.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx adds each signed delta to its account balance
	// within tx, bumping the last-updated timestamp.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
