package services

import (
	"context"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

// TransactionReaderSvc defines read operations over the ledger
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by the user.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated page of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams, userID string) ([]domain.Transaction, int64, error)

	// SummarizeByMovementType aggregates confirmed amounts per movement type.
	SummarizeByMovementType(ctx context.Context, params dto.ListTransactionsParams, userID string) ([]domain.MovementSummary, error)
}

// TransactionWriterSvc defines the balance-affecting ledger operations.
// Every method keeps the account running balance consistent with the
// recorded transactions, atomically.
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction and applies its signed
	// amount to the account balance.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction patches a transaction, reversing its old effect
	// and applying the new one in a single atomic step.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionTagSvc defines tag association operations
type TransactionTagSvc interface {
	// AddTags associates tags with a transaction, skipping duplicates.
	AddTags(ctx context.Context, transactionID string, req dto.TransactionTagsRequest, userID string) (*domain.Transaction, error)

	// RemoveTags detaches tags from a transaction. All requested tags
	// must be associated or nothing is removed.
	RemoveTags(ctx context.Context, transactionID string, req dto.TransactionTagsRequest, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionTagSvc
}
