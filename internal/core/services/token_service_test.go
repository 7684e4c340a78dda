package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/core/services"
	"github.com/SscSPs/savr_backend/internal/platform/config"
	"github.com/SscSPs/savr_backend/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg      *config.Config
	mockRepo *MockUserRepository
	service  portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "savr-backend-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.mockRepo = new(MockUserRepository)
	userSvc := services.NewUserService(suite.mockRepo)
	suite.service = services.NewTokenService(suite.cfg, userSvc)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrips() {
	ctx := context.Background()
	subjectID := uuid.NewString()

	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, subjectID, false)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(suite.cfg.JWTExpiryDuration), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(subjectID, claims.Subject)
	suite.False(claims.IsAdmin)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_AdminClaim() {
	ctx := context.Background()
	adminID := uuid.NewString()

	token, _, err := suite.service.GenerateAccessToken(ctx, adminID, true)
	suite.Require().NoError(err)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.True(claims.IsAdmin)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	raw, expiry, err := suite.service.GenerateRefreshToken(ctx)
	suite.Require().NoError(err)
	suite.NotEmpty(raw)

	stored := &domain.User{
		UserID:             userID,
		RefreshTokenHash:   utils.HashRefreshToken(raw),
		RefreshTokenExpiry: &expiry,
	}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()

	user, err := suite.service.ValidateRefreshToken(ctx, userID, raw)

	suite.Require().NoError(err)
	suite.Equal(userID, user.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_WrongToken() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(time.Hour)

	stored := &domain.User{
		UserID:             userID,
		RefreshTokenHash:   utils.HashRefreshToken("the-real-token"),
		RefreshTokenExpiry: &expiry,
	}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()

	user, err := suite.service.ValidateRefreshToken(ctx, userID, "some-other-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	userID := uuid.NewString()
	raw := "expired-token"
	expiry := time.Now().Add(-time.Minute)

	stored := &domain.User{
		UserID:             userID,
		RefreshTokenHash:   utils.HashRefreshToken(raw),
		RefreshTokenExpiry: &expiry,
	}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()

	user, err := suite.service.ValidateRefreshToken(ctx, userID, raw)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.Nil(user)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
