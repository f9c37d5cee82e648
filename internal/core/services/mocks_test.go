package services_test

import (
	"context"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) SummarizeByMovementType(ctx context.Context, userID string, from, to time.Time) ([]domain.MovementSummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementSummary), args.Error(1)
}

func (m *MockTransactionRepository) HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta portsrepo.BalanceDelta) error {
	args := m.Called(ctx, txn, delta)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, reversal portsrepo.BalanceDelta, applied portsrepo.BalanceDelta) error {
	args := m.Called(ctx, txn, reversal, applied)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal portsrepo.BalanceDelta) error {
	args := m.Called(ctx, txn, reversal)
	return args.Error(0)
}

func (m *MockTransactionRepository) AddTransactionTags(ctx context.Context, transactionID string, tagIDs []string, now time.Time) error {
	args := m.Called(ctx, transactionID, tagIDs, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) RemoveTransactionTags(ctx context.Context, transactionID string, tagIDs []string) error {
	args := m.Called(ctx, transactionID, tagIDs)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error) {
	args := m.Called(ctx, userID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) VerifyAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateDisplayOrder(ctx context.Context, userID string, orderedAccountIDs []string, now time.Time) error {
	args := m.Called(ctx, userID, orderedAccountIDs, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, deltas, now)
	return args.Error(0)
}

// --- Mock MovementTypeRepository ---

type MockMovementTypeRepository struct {
	mock.Mock
}

var _ portsrepo.MovementTypeReader = (*MockMovementTypeRepository)(nil)

func (m *MockMovementTypeRepository) FindMovementTypeByID(ctx context.Context, movementTypeID string) (*domain.MovementType, error) {
	args := m.Called(ctx, movementTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementType), args.Error(1)
}

func (m *MockMovementTypeRepository) ListMovementTypes(ctx context.Context) ([]domain.MovementType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementType), args.Error(1)
}

// --- Mock PaymentTypeRepository ---

type MockPaymentTypeRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentTypeReader = (*MockPaymentTypeRepository)(nil)

func (m *MockPaymentTypeRepository) FindPaymentTypeByID(ctx context.Context, paymentTypeID string) (*domain.PaymentType, error) {
	args := m.Called(ctx, paymentTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentType), args.Error(1)
}

func (m *MockPaymentTypeRepository) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentType), args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, name string, userID string) (*domain.Category, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string, onlyActive bool) ([]domain.Category, error) {
	args := m.Called(ctx, userID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	args := m.Called(ctx, categoryID, userID, now)
	return args.Error(0)
}

// --- Mock TagRepository ---

type MockTagRepository struct {
	mock.Mock
}

var _ portsrepo.TagRepositoryFacade = (*MockTagRepository)(nil)

func (m *MockTagRepository) FindTagByID(ctx context.Context, tagID string, userID string) (*domain.Tag, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagByName(ctx context.Context, name string, userID string) (*domain.Tag, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string, userID string) (map[string]domain.Tag, error) {
	args := m.Called(ctx, tagIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context, userID string, onlyActive bool) ([]domain.Tag, error) {
	args := m.Called(ctx, userID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) DeactivateTag(ctx context.Context, tagID string, userID string, now time.Time) error {
	args := m.Called(ctx, tagID, userID, now)
	return args.Error(0)
}

// --- Mock ProjectionRepository ---

type MockProjectionRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectionRepositoryFacade = (*MockProjectionRepository)(nil)

func (m *MockProjectionRepository) FindProjectionByID(ctx context.Context, projectionID string, userID string) (*domain.Projection, error) {
	args := m.Called(ctx, projectionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Projection), args.Error(1)
}

func (m *MockProjectionRepository) ListProjections(ctx context.Context, userID string, filter portsrepo.ListProjectionsFilter) ([]domain.Projection, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Projection), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectionRepository) ListDueProjections(ctx context.Context, userID string, deadline time.Time) ([]domain.Projection, error) {
	args := m.Called(ctx, userID, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Projection), args.Error(1)
}

func (m *MockProjectionRepository) ListRecurringProjections(ctx context.Context, userID string) ([]domain.Projection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Projection), args.Error(1)
}

func (m *MockProjectionRepository) SaveProjection(ctx context.Context, projection domain.Projection) error {
	args := m.Called(ctx, projection)
	return args.Error(0)
}

func (m *MockProjectionRepository) UpdateProjection(ctx context.Context, projection domain.Projection) error {
	args := m.Called(ctx, projection)
	return args.Error(0)
}

func (m *MockProjectionRepository) DeleteProjection(ctx context.Context, projectionID string, userID string) error {
	args := m.Called(ctx, projectionID, userID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}
