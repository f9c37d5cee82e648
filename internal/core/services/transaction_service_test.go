package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementTypeRepository
	mockCategoryRepo *MockCategoryRepository
	mockPaymentRepo  *MockPaymentTypeRepository
	mockTagRepo      *MockTagRepository
	service          portssvc.TransactionSvcFacade

	userID       string
	account      domain.Account
	otherAccount domain.Account
	incomeType   domain.MovementType
	expenseType  domain.MovementType
	transferType domain.MovementType
	category     domain.Category
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementTypeRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockPaymentRepo = new(MockPaymentTypeRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockMovementRepo,
		suite.mockCategoryRepo,
		suite.mockPaymentRepo,
		suite.mockTagRepo,
	)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Checking",
		AccountKind:    domain.AccountBank,
		CurrentBalance: decimal.RequireFromString("1000.00"),
		IsActive:       true,
	}
	suite.otherAccount = domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Wallet",
		AccountKind:    domain.AccountCash,
		CurrentBalance: decimal.RequireFromString("50.00"),
		IsActive:       true,
	}
	suite.incomeType = domain.MovementType{MovementTypeID: "mt-income", Name: "Income"}
	suite.expenseType = domain.MovementType{MovementTypeID: "mt-expense", Name: "Expense"}
	suite.transferType = domain.MovementType{MovementTypeID: "mt-transfer", Name: "Transfer", IsTransfer: true}
	suite.category = domain.Category{
		CategoryID:     uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Groceries",
		MovementTypeID: suite.expenseType.MovementTypeID,
		IsActive:       true,
	}
}

func (suite *TransactionServiceTestSuite) expectReferences(movementType domain.MovementType) {
	ctxMatcher := mock.Anything
	suite.mockAccountRepo.On("FindAccountByID", ctxMatcher, suite.account.AccountID, suite.userID).Return(&suite.account, nil)
	suite.mockMovementRepo.On("FindMovementTypeByID", ctxMatcher, movementType.MovementTypeID).Return(&movementType, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctxMatcher, suite.category.CategoryID, suite.userID).Return(&suite.category, nil)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDebitsBalance() {
	ctx := context.Background()
	amount := decimal.RequireFromString("150.50")
	req := dto.CreateTransactionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         amount,
		Description:    "Weekly groceries",
	}

	suite.expectReferences(suite.expenseType)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(d portsrepo.BalanceDelta) bool {
			return d.AccountID == suite.account.AccountID &&
				d.Amount.Equal(amount.Neg()) &&
				d.EnforceFloor
		})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.userID, txn.UserID)
	suite.True(txn.Confirmed)
	suite.True(txn.Amount.Equal(amount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeCreditsWithoutFloor() {
	ctx := context.Background()
	amount := decimal.RequireFromString("200.00")
	req := dto.CreateTransactionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.incomeType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         amount,
	}

	suite.expectReferences(suite.incomeType)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(d portsrepo.BalanceDelta) bool {
			return d.Amount.Equal(amount) && !d.EnforceFloor
		})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         decimal.Zero,
	}

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.transferType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         decimal.RequireFromString("25.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID, suite.userID).Return(&suite.account, nil)
	suite.mockMovementRepo.On("FindMovementTypeByID", mock.Anything, suite.transferType.MovementTypeID).Return(&suite.transferType, nil)

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransferUnsupported)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := suite.account
	inactive.IsActive = false
	req := dto.CreateTransactionRequest{
		AccountID:      inactive.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, inactive.AccountID, suite.userID).Return(&inactive, nil)

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InsufficientBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         decimal.RequireFromString("5000.00"),
	}

	suite.expectReferences(suite.expenseType)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("repositories.BalanceDelta")).
		Return(domain.ErrInsufficientBalance).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientBalance)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReversesThenApplies() {
	ctx := context.Background()
	originalAmount := decimal.RequireFromString("150.50")
	newAmount := decimal.RequireFromString("200.00")
	original := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         originalAmount,
		Confirmed:      true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID, suite.userID).Return(&original, nil)
	suite.expectReferences(suite.expenseType)
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(reversal portsrepo.BalanceDelta) bool {
			// Reversal credits the original debit back, floor never checked.
			return reversal.AccountID == suite.account.AccountID &&
				reversal.Amount.Equal(originalAmount) &&
				!reversal.EnforceFloor
		}),
		mock.MatchedBy(func(applied portsrepo.BalanceDelta) bool {
			return applied.AccountID == suite.account.AccountID &&
				applied.Amount.Equal(newAmount.Neg()) &&
				applied.EnforceFloor
		})).Return(nil).Once()

	req := dto.UpdateTransactionRequest{Amount: &newAmount}
	updated, err := suite.service.UpdateTransaction(ctx, original.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MoveAcrossAccounts() {
	ctx := context.Background()
	amount := decimal.RequireFromString("40.00")
	original := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         amount,
		Confirmed:      true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID, suite.userID).Return(&original, nil)
	suite.mockMovementRepo.On("FindMovementTypeByID", mock.Anything, suite.expenseType.MovementTypeID).Return(&suite.expenseType, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.otherAccount.AccountID, suite.userID).Return(&suite.otherAccount, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.category.CategoryID, suite.userID).Return(&suite.category, nil)
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(reversal portsrepo.BalanceDelta) bool {
			return reversal.AccountID == suite.account.AccountID && reversal.Amount.Equal(amount)
		}),
		mock.MatchedBy(func(applied portsrepo.BalanceDelta) bool {
			return applied.AccountID == suite.otherAccount.AccountID && applied.Amount.Equal(amount.Neg())
		})).Return(nil).Once()

	req := dto.UpdateTransactionRequest{AccountID: &suite.otherAccount.AccountID}
	updated, err := suite.service.UpdateTransaction(ctx, original.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.otherAccount.AccountID, updated.AccountID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RestoresBalance() {
	ctx := context.Background()
	amount := decimal.RequireFromString("150.50")
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Amount:         amount,
		Confirmed:      true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID, suite.userID).Return(&txn, nil)
	suite.mockMovementRepo.On("FindMovementTypeByID", mock.Anything, suite.expenseType.MovementTypeID).Return(&suite.expenseType, nil)
	suite.mockTxnRepo.On("DeleteTransaction", mock.Anything, txn,
		mock.MatchedBy(func(reversal portsrepo.BalanceDelta) bool {
			return reversal.AccountID == suite.account.AccountID &&
				reversal.Amount.Equal(amount) &&
				!reversal.EnforceFloor
		})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, missingID, suite.userID).
		Return(nil, apperrors.NewNotFoundError("transaction not found"))

	err := suite.service.DeleteTransaction(ctx, missingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionNotFound)
}

func (suite *TransactionServiceTestSuite) TestAddTags_DeduplicatesAndRefetches() {
	ctx := context.Background()
	tagID := uuid.NewString()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.account.AccountID,
	}
	withTag := txn
	withTag.TagIDs = []string{tagID}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID, suite.userID).Return(&txn, nil).Once()
	suite.mockTagRepo.On("FindTagsByIDs", mock.Anything, []string{tagID}, suite.userID).
		Return(map[string]domain.Tag{tagID: {TagID: tagID}}, nil).Once()
	suite.mockTxnRepo.On("AddTransactionTags", mock.Anything, txn.TransactionID, []string{tagID}, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID, suite.userID).Return(&withTag, nil).Once()

	// Duplicate IDs in the request collapse to one association.
	req := dto.TransactionTagsRequest{TagIDs: []string{tagID, tagID}}
	result, err := suite.service.AddTags(ctx, txn.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal([]string{tagID}, result.TagIDs)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRemoveTags_UnassociatedTagFailsWhole() {
	ctx := context.Background()
	associated := uuid.NewString()
	stranger := uuid.NewString()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.account.AccountID,
		TagIDs:        []string{associated},
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID, suite.userID).Return(&txn, nil)

	req := dto.TransactionTagsRequest{TagIDs: []string{associated, stranger}}
	_, err := suite.service.RemoveTags(ctx, txn.TransactionID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTagNotAssociated)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "RemoveTransactionTags", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, suite.userID,
		mock.MatchedBy(func(f portsrepo.ListTransactionsFilter) bool {
			return f.Limit == 50 && f.Offset == 0
		})).Return([]domain.Transaction{}, int64(0), nil).Once()

	_, _, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 9999, Offset: -3}, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
