package dto

import (
	"time"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	DeviceID  string `json:"deviceId" binding:"required"`
	PushToken string `json:"pushToken"`
}

// LoginRequest defines the payload for user and admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest defines the payload for refreshing an access token.
type RefreshRequest struct {
	UserID       string `json:"userId" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// PushTokenRequest defines the payload for updating the push token.
type PushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required"`
}

// UserResponse is the outward representation of a user. The password hash and
// token state never leave the service.
type UserResponse struct {
	UserID         string          `json:"userID"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	DeviceID       string          `json:"deviceId"`
	DeviceVerified bool            `json:"deviceVerified"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		FullName:       u.FullName,
		Email:          u.Email,
		DeviceID:       u.DeviceID,
		DeviceVerified: u.DeviceVerified,
		Balance:        u.Balance,
		CreatedAt:      u.CreatedAt,
	}
}

// AuthResponse is returned from a successful login.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshResponse is returned from a successful token refresh.
type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
