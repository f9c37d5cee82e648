package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
	"github.com/honeymoneyapp/honeymoney_backend/internal/platform/config"
	"github.com/honeymoneyapp/honeymoney_backend/internal/utils"
)

// authService issues and validates HS256 JWTs for password logins.
type authService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.AuthSvc {
	return &authService{
		cfg:         cfg,
		userService: userService,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login verifies credentials and issues a signed token. Unknown emails and
// wrong passwords both map to ErrUnauthorized so callers cannot probe for
// registered addresses.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userService.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// VerifyToken validates a token and returns the subject user ID.
func (s *authService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
