package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/middleware"
	"github.com/SscSPs/savr_backend/internal/platform/config"
	"github.com/SscSPs/savr_backend/internal/utils"
)

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 32

type tokenService struct {
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT for the given subject.
func (s *tokenService) GenerateAccessToken(ctx context.Context, subjectID string, isAdmin bool) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(subjectID, isAdmin, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sign access token", slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates a new opaque refresh token and its expiry. Only
// the hash of the returned token is ever persisted.
func (s *tokenService) GenerateRefreshToken(ctx context.Context) (string, time.Time, error) {
	token, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiry := time.Now().UTC().Add(s.cfg.RefreshTokenExpiryDuration)
	return token, expiry, nil
}

// ValidateRefreshToken checks a raw refresh token against the user's stored
// hash and expiry.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	if user.RefreshTokenExpiry == nil || time.Now().UTC().After(*user.RefreshTokenExpiry) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	return user, nil
}
