package services_test

import (
	"context"
	"testing"
	"time"

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

type ProjectionServiceTestSuite struct {
	suite.Suite
	mockProjectionRepo *MockProjectionRepository
	mockAccountRepo    *MockAccountRepository
	mockMovementRepo   *MockMovementTypeRepository
	mockCategoryRepo   *MockCategoryRepository
	mockPaymentRepo    *MockPaymentTypeRepository
	service            portssvc.ProjectionSvcFacade

	userID       string
	account      domain.Account
	expenseType  domain.MovementType
	transferType domain.MovementType
	category     domain.Category
}

func (suite *ProjectionServiceTestSuite) SetupTest() {
	suite.mockProjectionRepo = new(MockProjectionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementTypeRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockPaymentRepo = new(MockPaymentTypeRepository)
	suite.service = services.NewProjectionService(
		suite.mockProjectionRepo,
		suite.mockAccountRepo,
		suite.mockMovementRepo,
		suite.mockCategoryRepo,
		suite.mockPaymentRepo,
	)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountKind: domain.AccountBank,
		IsActive:    true,
	}
	suite.expenseType = domain.MovementType{MovementTypeID: "mt-expense", Name: "Expense"}
	suite.transferType = domain.MovementType{MovementTypeID: "mt-transfer", Name: "Transfer", IsTransfer: true}
	suite.category = domain.Category{
		CategoryID:     uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Rent",
		MovementTypeID: suite.expenseType.MovementTypeID,
		IsActive:       true,
	}
}

func (suite *ProjectionServiceTestSuite) expectReferences(movementType domain.MovementType) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID, suite.userID).Return(&suite.account, nil)
	suite.mockMovementRepo.On("FindMovementTypeByID", mock.Anything, movementType.MovementTypeID).Return(&movementType, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.category.CategoryID, suite.userID).Return(&suite.category, nil)
}

func (suite *ProjectionServiceTestSuite) TestCreateProjection_Defaults() {
	ctx := context.Background()
	req := dto.CreateProjectionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Title:          "Monthly rent",
		Amount:         decimal.RequireFromString("850.00"),
	}

	suite.expectReferences(suite.expenseType)
	suite.mockProjectionRepo.On("SaveProjection", mock.Anything, mock.AnythingOfType("domain.Projection")).Return(nil).Once()

	projection, err := suite.service.CreateProjection(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(projection)
	suite.Equal(domain.ProjectionPending, projection.State)
	suite.True(projection.Notify)
	suite.Equal(1, projection.NotificationLeadDays)
	suite.False(projection.Recurring)
	suite.WithinDuration(time.Now().UTC(), projection.ScheduledDate, time.Minute)
	suite.mockProjectionRepo.AssertExpectations(suite.T())
}

func (suite *ProjectionServiceTestSuite) TestCreateProjection_TransferAllowed() {
	// Projections carry no balance effect, so transfer movement types are
	// legal here even though the ledger rejects them.
	ctx := context.Background()
	req := dto.CreateProjectionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.transferType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Title:          "Move savings",
		Amount:         decimal.RequireFromString("300.00"),
	}

	suite.expectReferences(suite.transferType)
	suite.mockProjectionRepo.On("SaveProjection", mock.Anything, mock.AnythingOfType("domain.Projection")).Return(nil).Once()

	_, err := suite.service.CreateProjection(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockProjectionRepo.AssertExpectations(suite.T())
}

func (suite *ProjectionServiceTestSuite) TestCreateProjection_RecurringNeedsFrequency() {
	ctx := context.Background()
	req := dto.CreateProjectionRequest{
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Title:          "Gym",
		Amount:         decimal.RequireFromString("30.00"),
		Recurring:      true,
	}

	_, err := suite.service.CreateProjection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFrequencyRequired)
	suite.mockProjectionRepo.AssertNotCalled(suite.T(), "SaveProjection", mock.Anything, mock.Anything)
}

func (suite *ProjectionServiceTestSuite) TestChangeProjectionState_AllowedTransitions() {
	ctx := context.Background()
	cases := []struct {
		from domain.ProjectionState
		to   domain.ProjectionState
	}{
		{domain.ProjectionPending, domain.ProjectionConfirmed},
		{domain.ProjectionPending, domain.ProjectionOmitted},
		{domain.ProjectionPending, domain.ProjectionOverdue},
		{domain.ProjectionOverdue, domain.ProjectionConfirmed},
		{domain.ProjectionOverdue, domain.ProjectionOmitted},
	}

	for _, tc := range cases {
		projection := domain.Projection{
			ProjectionID: uuid.NewString(),
			UserID:       suite.userID,
			State:        tc.from,
		}
		suite.mockProjectionRepo.On("FindProjectionByID", mock.Anything, projection.ProjectionID, suite.userID).Return(&projection, nil).Once()
		suite.mockProjectionRepo.On("UpdateProjection", mock.Anything, mock.MatchedBy(func(p domain.Projection) bool {
			return p.ProjectionID == projection.ProjectionID && p.State == tc.to
		})).Return(nil).Once()

		result, err := suite.service.ChangeProjectionState(ctx, projection.ProjectionID, dto.ChangeProjectionStateRequest{State: tc.to}, suite.userID)

		suite.Require().NoError(err, "%s -> %s should be allowed", tc.from, tc.to)
		suite.Equal(tc.to, result.State)
	}
	suite.mockProjectionRepo.AssertExpectations(suite.T())
}

func (suite *ProjectionServiceTestSuite) TestChangeProjectionState_RejectedTransitions() {
	ctx := context.Background()
	cases := []struct {
		from domain.ProjectionState
		to   domain.ProjectionState
	}{
		{domain.ProjectionConfirmed, domain.ProjectionPending},
		{domain.ProjectionConfirmed, domain.ProjectionOmitted},
		{domain.ProjectionOmitted, domain.ProjectionConfirmed},
		{domain.ProjectionOverdue, domain.ProjectionPending},
		{domain.ProjectionPending, domain.ProjectionPending},
	}

	for _, tc := range cases {
		projection := domain.Projection{
			ProjectionID: uuid.NewString(),
			UserID:       suite.userID,
			State:        tc.from,
		}
		suite.mockProjectionRepo.On("FindProjectionByID", mock.Anything, projection.ProjectionID, suite.userID).Return(&projection, nil).Once()

		_, err := suite.service.ChangeProjectionState(ctx, projection.ProjectionID, dto.ChangeProjectionStateRequest{State: tc.to}, suite.userID)

		suite.Require().Error(err, "%s -> %s should be rejected", tc.from, tc.to)
		suite.ErrorIs(err, services.ErrInvalidStateTransition)
	}
	suite.mockProjectionRepo.AssertNotCalled(suite.T(), "UpdateProjection", mock.Anything, mock.Anything)
}

func (suite *ProjectionServiceTestSuite) TestChangeProjectionState_UnknownStateRejected() {
	ctx := context.Background()

	_, err := suite.service.ChangeProjectionState(ctx, uuid.NewString(), dto.ChangeProjectionStateRequest{State: "SETTLED"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectionServiceTestSuite) TestListDueProjections_WindowDeadline() {
	ctx := context.Background()
	withinDays := 7

	suite.mockProjectionRepo.On("ListDueProjections", mock.Anything, suite.userID,
		mock.MatchedBy(func(deadline time.Time) bool {
			expected := time.Now().UTC().AddDate(0, 0, withinDays)
			return deadline.Sub(expected).Abs() < time.Minute
		})).Return([]domain.Projection{}, nil).Once()

	_, err := suite.service.ListDueProjections(ctx, suite.userID, withinDays)

	suite.Require().NoError(err)
	suite.mockProjectionRepo.AssertExpectations(suite.T())
}

func (suite *ProjectionServiceTestSuite) TestListDueProjections_NegativeDaysRejected() {
	ctx := context.Background()

	_, err := suite.service.ListDueProjections(ctx, suite.userID, -1)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectionServiceTestSuite) TestUpdateProjection_StateUntouched() {
	ctx := context.Background()
	projection := domain.Projection{
		ProjectionID:   uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		MovementTypeID: suite.expenseType.MovementTypeID,
		CategoryID:     suite.category.CategoryID,
		Title:          "Old title",
		Amount:         decimal.RequireFromString("20.00"),
		State:          domain.ProjectionOverdue,
	}
	newTitle := "New title"

	suite.mockProjectionRepo.On("FindProjectionByID", mock.Anything, projection.ProjectionID, suite.userID).Return(&projection, nil)
	suite.expectReferences(suite.expenseType)
	suite.mockProjectionRepo.On("UpdateProjection", mock.Anything, mock.MatchedBy(func(p domain.Projection) bool {
		return p.Title == newTitle && p.State == domain.ProjectionOverdue
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProjection(ctx, projection.ProjectionID, dto.UpdateProjectionRequest{Title: &newTitle}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProjectionOverdue, updated.State)
	suite.mockProjectionRepo.AssertExpectations(suite.T())
}

func TestProjectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}
