package services

import (
	"context"
	"time"

	"github.com/SscSPs/savr_backend/internal/core/domain"
)

// TokenSvcFacade handles JWT access tokens and opaque refresh tokens.
// Handlers and middleware consume this facade; the savings engine never sees a
// raw token, only the identity facts derived from one.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the given subject. isAdmin
	// marks admin tokens so the admin middleware can tell them apart.
	GenerateAccessToken(ctx context.Context, subjectID string, isAdmin bool) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	// The caller is responsible for persisting only the token's hash.
	GenerateRefreshToken(ctx context.Context) (string, time.Time, error)

	// ValidateRefreshToken checks a raw refresh token against the user's
	// stored hash and expiry, returning the user when valid.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// PushNotifierSvc delivers best-effort push notifications. Implementations are
// invoked after the atomic write commits; failures are logged, never
// propagated into the transaction result.
type PushNotifierSvc interface {
	Notify(ctx context.Context, pushToken, title, body string, data map[string]any)
}
