package services

import (
	"context"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the user's accounts ordered by display order.
	ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error)

	// SummarizeAccounts aggregates current balances grouped by account kind.
	SummarizeAccounts(ctx context.Context, userID string) (*dto.AccountsSummaryResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts with
	// recorded transactions cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// ReorderAccounts sets the display order for the given accounts.
	ReorderAccounts(ctx context.Context, req dto.ReorderAccountsRequest, userID string) error
}

// AccountVerifierSvc defines consistency checks over stored balances
type AccountVerifierSvc interface {
	// VerifyAccountBalance recomputes the balance from the ledger and
	// compares it against the stored running balance.
	VerifyAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountVerifierSvc
}
