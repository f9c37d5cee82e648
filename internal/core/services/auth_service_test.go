package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/platform/config"
	"github.com/honeymoneyapp/honeymoney_backend/internal/utils"
)

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret-key-for-auth-service",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "honeymoney-backend-test",
	}
}

func testUser(t *testing.T, password string) *domain.User {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	mockUserSvc := new(MockUserService)
	authSvc := services.NewAuthService(testAuthConfig(), mockUserSvc)
	user := testUser(t, "correct horse battery")

	mockUserSvc.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

	resp, err := authSvc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "correct horse battery"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.UserID, resp.User.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
	mockUserSvc.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mockUserSvc := new(MockUserService)
	authSvc := services.NewAuthService(testAuthConfig(), mockUserSvc)
	user := testUser(t, "correct horse battery")

	mockUserSvc.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := authSvc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	mockUserSvc := new(MockUserService)
	authSvc := services.NewAuthService(testAuthConfig(), mockUserSvc)

	mockUserSvc.On("GetUserByEmail", ctx, "nobody@example.com").
		Return(nil, services.ErrUserNotFound).Once()

	_, err := authSvc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	require.Error(t, err)
	// Unknown emails are indistinguishable from bad passwords.
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()
	mockUserSvc := new(MockUserService)
	authSvc := services.NewAuthService(testAuthConfig(), mockUserSvc)
	user := testUser(t, "correct horse battery")
	user.IsActive = false

	mockUserSvc.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := authSvc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "correct horse battery"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mockUserSvc := new(MockUserService)
	cfg := testAuthConfig()
	authSvc := services.NewAuthService(cfg, mockUserSvc)
	user := testUser(t, "correct horse battery")

	mockUserSvc.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
	resp, err := authSvc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "correct horse battery"})
	require.NoError(t, err)

	subject, err := authSvc.VerifyToken(ctx, resp.Token)

	require.NoError(t, err)
	assert.Equal(t, user.UserID, subject)
}

func TestVerifyToken_Garbage(t *testing.T) {
	ctx := context.Background()
	authSvc := services.NewAuthService(testAuthConfig(), new(MockUserService))

	_, err := authSvc.VerifyToken(ctx, "not-a-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
