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
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SnapshotsOpeningBalance() {
	ctx := context.Background()
	opening := decimal.RequireFromString("1000.00")
	req := dto.CreateAccountRequest{
		Name:           "Checking",
		AccountKind:    domain.AccountBank,
		InitialBalance: opening,
	}

	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.InitialBalance.Equal(opening) && a.CurrentBalance.Equal(opening) && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.userID, account.UserID)
	suite.True(account.CurrentBalance.Equal(opening))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Checking",
		AccountKind:    domain.AccountBank,
		InitialBalance: decimal.RequireFromString("-10.00"),
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_BlockedByLedgerHistory() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID, suite.userID).Return(&account, nil)
	suite.mockTxnRepo.On("HasTransactionsForAccount", mock.Anything, account.AccountID).Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasTransactions)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_EmptyAccountSucceeds() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID, suite.userID).Return(&account, nil)
	suite.mockTxnRepo.On("HasTransactionsForAccount", mock.Anything, account.AccountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", mock.Anything, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestVerifyAccountBalance_ReturnsBothValues() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		CurrentBalance: decimal.RequireFromString("800.00"),
		IsActive:       true,
	}
	recomputed := decimal.RequireFromString("800.00")

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID, suite.userID).Return(&account, nil)
	suite.mockAccountRepo.On("VerifyAccountBalance", mock.Anything, account.AccountID, suite.userID).Return(recomputed, nil).Once()

	stored, computed, err := suite.service.VerifyAccountBalance(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(stored.Equal(account.CurrentBalance))
	suite.True(computed.Equal(recomputed))
}

func (suite *AccountServiceTestSuite) TestSummarizeAccounts_GroupsByKind() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountKind: domain.AccountBank, CurrentBalance: decimal.RequireFromString("700.00"), IsActive: true},
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountKind: domain.AccountBank, CurrentBalance: decimal.RequireFromString("200.00"), IsActive: true},
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountKind: domain.AccountCash, CurrentBalance: decimal.RequireFromString("100.00"), IsActive: true},
	}

	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID, true).Return(accounts, nil).Once()

	summary, err := suite.service.SummarizeAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, summary.TotalAccounts)
	suite.True(summary.TotalBalance.Equal(decimal.RequireFromString("1000.00")))
	suite.Equal(2, summary.ByKind[domain.AccountBank].Count)
	suite.True(summary.ByKind[domain.AccountBank].Balance.Equal(decimal.RequireFromString("900.00")))
	suite.Equal(1, summary.ByKind[domain.AccountCash].Count)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, missingID, suite.userID).
		Return(nil, apperrors.NewNotFoundError("account not found"))

	_, err := suite.service.GetAccountByID(ctx, missingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
