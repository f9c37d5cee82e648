package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountHasTransactions = errors.New("account has recorded transactions")
)

// accountService manages accounts. It never mutates CurrentBalance directly;
// only the ledger's units of work do that.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. The opening balance is stored both as
// the initial snapshot and the starting running balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		AccountKind:    req.AccountKind,
		Color:          req.Color,
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		DisplayOrder:   req.DisplayOrder,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account owned by the user.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves the user's accounts ordered by display order.
func (s *accountService) ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SummarizeAccounts builds the per-user overview of active accounts.
func (s *accountService) SummarizeAccounts(ctx context.Context, userID string) (*dto.AccountsSummaryResponse, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	byKind := make(map[domain.AccountKind]dto.AccountKindSummary)
	total := decimal.Zero
	for _, acc := range accounts {
		summary := byKind[acc.AccountKind]
		summary.Count++
		summary.Balance = summary.Balance.Add(acc.CurrentBalance)
		byKind[acc.AccountKind] = summary
		total = total.Add(acc.CurrentBalance)
	}

	return &dto.AccountsSummaryResponse{
		TotalAccounts: len(accounts),
		TotalBalance:  total,
		ByKind:        byKind,
		Accounts:      dto.ToListAccountResponse(accounts),
	}, nil
}

// UpdateAccount updates an existing account's details.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountKind != nil {
		account.AccountKind = *req.AccountKind
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.DisplayOrder != nil {
		account.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Accounts that hold ledger
// history cannot be deactivated, since their balance must stay reconstructible.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}

	hasTxns, err := s.transactionRepo.HasTransactionsForAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account transactions: %w", err)
	}
	if hasTxns {
		return fmt.Errorf("%w: %s", ErrAccountHasTransactions, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// ReorderAccounts persists a new display order. Every listed account must
// belong to the user.
func (s *accountService) ReorderAccounts(ctx context.Context, req dto.ReorderAccountsRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, accountID := range req.AccountIDs {
		if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
			return err
		}
	}

	if err := s.accountRepo.UpdateDisplayOrder(ctx, userID, req.AccountIDs, time.Now().UTC()); err != nil {
		logger.Error("Failed to reorder accounts", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to reorder accounts: %w", err)
	}

	return nil
}

// VerifyAccountBalance recomputes the balance from the recorded ledger and
// returns (stored, recomputed). Matching values mean the running balance is
// consistent with history.
func (s *accountService) VerifyAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	recomputed, err := s.accountRepo.VerifyAccountBalance(ctx, accountID, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to verify account balance: %w", err)
	}
	return account.CurrentBalance, recomputed, nil
}
