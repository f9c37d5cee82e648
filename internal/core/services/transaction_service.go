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
	ErrReferenceNotFound   = errors.New("referenced entity not found")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransferUnsupported = errors.New("transfer movements are not supported on a single-account ledger")
	ErrTagNotAssociated    = errors.New("tag is not associated with the transaction")
)

// transactionService is the ledger: every write keeps account running
// balances consistent with the recorded transactions.
type transactionService struct {
	transactionRepo  portsrepo.TransactionRepositoryFacade
	accountRepo      portsrepo.AccountReader
	movementTypeRepo portsrepo.MovementTypeReader
	categoryRepo     portsrepo.CategoryReader
	paymentTypeRepo  portsrepo.PaymentTypeReader
	tagRepo          portsrepo.TagReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	movementTypeRepo portsrepo.MovementTypeReader,
	categoryRepo portsrepo.CategoryReader,
	paymentTypeRepo portsrepo.PaymentTypeReader,
	tagRepo portsrepo.TagReader,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo:  transactionRepo,
		accountRepo:      accountRepo,
		movementTypeRepo: movementTypeRepo,
		categoryRepo:     categoryRepo,
		paymentTypeRepo:  paymentTypeRepo,
		tagRepo:          tagRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolvedRefs carries the validated references of a transaction write.
type resolvedRefs struct {
	account *domain.Account
	kind    domain.MovementKind
}

// resolveReferences validates every foreign reference of a transaction write
// and classifies its movement type. Inactive accounts are rejected; transfer
// movement types are rejected because a transaction settles against exactly
// one account.
func (s *transactionService) resolveReferences(ctx context.Context, userID, accountID, movementTypeID, categoryID string, paymentTypeID *string) (*resolvedRefs, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", ErrReferenceNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, accountID)
	}

	movementType, err := s.movementTypeRepo.FindMovementTypeByID(ctx, movementTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: movement type %s", ErrReferenceNotFound, movementTypeID)
		}
		return nil, fmt.Errorf("failed to fetch movement type: %w", err)
	}

	kind, err := domain.ResolveMovementKind(*movementType)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindTransfer {
		return nil, ErrTransferUnsupported
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrReferenceNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	if paymentTypeID != nil {
		if _, err := s.paymentTypeRepo.FindPaymentTypeByID(ctx, *paymentTypeID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: payment type %s", ErrReferenceNotFound, *paymentTypeID)
			}
			return nil, fmt.Errorf("failed to fetch payment type: %w", err)
		}
	}

	return &resolvedRefs{account: account, kind: kind}, nil
}

// verifyTagsOwned checks that every tag ID exists and belongs to the user.
func (s *transactionService) verifyTagsOwned(ctx context.Context, tagIDs []string, userID string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	owned, err := s.tagRepo.FindTagsByIDs(ctx, tagIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}
	for _, id := range tagIDs {
		if _, ok := owned[id]; !ok {
			return fmt.Errorf("%w: tag %s", ErrReferenceNotFound, id)
		}
	}
	return nil
}

// deltaFor builds the balance delta a signed amount implies. Only debits of
// freshly applied amounts enforce the zero floor; reversals never do.
func deltaFor(accountID string, signed decimal.Decimal, enforceFloor bool) portsrepo.BalanceDelta {
	return portsrepo.BalanceDelta{
		AccountID:    accountID,
		Amount:       signed,
		EnforceFloor: enforceFloor && signed.IsNegative(),
	}
}

// CreateTransaction records a transaction and atomically applies its signed
// amount to the account balance.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	refs, err := s.resolveReferences(ctx, userID, req.AccountID, req.MovementTypeID, req.CategoryID, req.PaymentTypeID)
	if err != nil {
		return nil, err
	}
	tagIDs := uniqueStrings(req.TagIDs)
	if err := s.verifyTagsOwned(ctx, tagIDs, userID); err != nil {
		return nil, err
	}

	signed, err := domain.SignedDelta(refs.kind, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}
	confirmed := true
	if req.Confirmed != nil {
		confirmed = *req.Confirmed
	}

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         userID,
		AccountID:      req.AccountID,
		MovementTypeID: req.MovementTypeID,
		CategoryID:     req.CategoryID,
		PaymentTypeID:  req.PaymentTypeID,
		Amount:         req.Amount,
		Description:    req.Description,
		Date:           date,
		Confirmed:      confirmed,
		Notes:          req.Notes,
		TagIDs:         tagIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, deltaFor(txn.AccountID, signed, true)); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, err
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// UpdateTransaction patches a transaction. The original balance effect is
// reversed and the merged one applied inside a single unit of work, so a
// rejected floor check leaves both balances untouched.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	merged := *original
	if req.AccountID != nil {
		merged.AccountID = *req.AccountID
	}
	if req.MovementTypeID != nil {
		merged.MovementTypeID = *req.MovementTypeID
	}
	if req.CategoryID != nil {
		merged.CategoryID = *req.CategoryID
	}
	if req.PaymentTypeID != nil {
		merged.PaymentTypeID = req.PaymentTypeID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
		}
		merged.Amount = *req.Amount
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Date != nil {
		merged.Date = req.Date.UTC()
	}
	if req.Confirmed != nil {
		merged.Confirmed = *req.Confirmed
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}

	// The original movement type may differ from the merged one; both kinds
	// are needed to reverse the old effect and apply the new.
	originalSigned, err := s.signedDeltaOf(ctx, original.MovementTypeID, original.Amount)
	if err != nil {
		return nil, err
	}

	refs, err := s.resolveReferences(ctx, userID, merged.AccountID, merged.MovementTypeID, merged.CategoryID, merged.PaymentTypeID)
	if err != nil {
		return nil, err
	}
	mergedSigned, err := domain.SignedDelta(refs.kind, merged.Amount)
	if err != nil {
		return nil, err
	}

	merged.LastUpdatedAt = time.Now().UTC()

	reversal := deltaFor(original.AccountID, originalSigned.Neg(), false)
	applied := deltaFor(merged.AccountID, mergedSigned, true)

	if err := s.transactionRepo.UpdateTransaction(ctx, merged, reversal, applied); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, err
		}
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &merged, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
// Reversals are never floor-checked; restoring history must always succeed.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	signed, err := s.signedDeltaOf(ctx, txn.MovementTypeID, txn.Amount)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, *txn, deltaFor(txn.AccountID, signed.Neg(), false)); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// signedDeltaOf resolves a movement type and returns the signed balance delta
// for amount under that type's polarity.
func (s *transactionService) signedDeltaOf(ctx context.Context, movementTypeID string, amount decimal.Decimal) (decimal.Decimal, error) {
	movementType, err := s.movementTypeRepo.FindMovementTypeByID(ctx, movementTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: movement type %s", ErrReferenceNotFound, movementTypeID)
		}
		return decimal.Zero, fmt.Errorf("failed to fetch movement type: %w", err)
	}
	kind, err := domain.ResolveMovementKind(*movementType)
	if err != nil {
		return decimal.Zero, err
	}
	if kind == domain.KindTransfer {
		return decimal.Zero, ErrTransferUnsupported
	}
	return domain.SignedDelta(kind, amount)
}

// GetTransactionByID retrieves a transaction owned by the user.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, userID string) ([]domain.Transaction, int64, error) {
	filter := portsrepo.ListTransactionsFilter{
		AccountID:      params.AccountID,
		MovementTypeID: params.MovementTypeID,
		Confirmed:      params.Confirmed,
		DateFrom:       params.DateFrom,
		DateTo:         params.DateTo,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	txns, total, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// SummarizeByMovementType aggregates confirmed amounts per movement type.
// Without an explicit range it covers the current calendar month.
func (s *transactionService) SummarizeByMovementType(ctx context.Context, params dto.ListTransactionsParams, userID string) ([]domain.MovementSummary, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now
	if params.DateFrom != nil {
		from = *params.DateFrom
	}
	if params.DateTo != nil {
		to = *params.DateTo
	}
	summaries, err := s.transactionRepo.SummarizeByMovementType(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return summaries, nil
}

// AddTags associates tags with a transaction, skipping ones already attached.
func (s *transactionService) AddTags(ctx context.Context, transactionID string, req dto.TransactionTagsRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetTransactionByID(ctx, transactionID, userID); err != nil {
		return nil, err
	}
	tagIDs := uniqueStrings(req.TagIDs)
	if err := s.verifyTagsOwned(ctx, tagIDs, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.transactionRepo.AddTransactionTags(ctx, transactionID, tagIDs, now); err != nil {
		logger.Error("Failed to add transaction tags", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to add transaction tags: %w", err)
	}

	return s.GetTransactionByID(ctx, transactionID, userID)
}

// RemoveTags detaches tags from a transaction. Every requested tag must be
// associated or nothing is removed.
func (s *transactionService) RemoveTags(ctx context.Context, transactionID string, req dto.TransactionTagsRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	associated := make(map[string]bool, len(txn.TagIDs))
	for _, id := range txn.TagIDs {
		associated[id] = true
	}
	tagIDs := uniqueStrings(req.TagIDs)
	for _, id := range tagIDs {
		if !associated[id] {
			return nil, fmt.Errorf("%w: tag %s", ErrTagNotAssociated, id)
		}
	}

	if err := s.transactionRepo.RemoveTransactionTags(ctx, transactionID, tagIDs); err != nil {
		logger.Error("Failed to remove transaction tags", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to remove transaction tags: %w", err)
	}

	return s.GetTransactionByID(ctx, transactionID, userID)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
