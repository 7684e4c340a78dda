package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a savings account holder within the core domain.
// This is the primary representation used by services.
type User struct {
	UserID         string          `json:"userID"` // Primary Key (UUID)
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`        // Unique
	PasswordHash   string          `json:"-"`            // bcrypt hash, never serialized
	DeviceID       string          `json:"deviceID"`     // Device the account was registered from
	DeviceVerified bool            `json:"deviceVerified"` // Granted once by an admin; gates deposits/withdrawals
	Balance        decimal.Decimal `json:"balance"`      // Persisted balance; always equals the signed sum of the ledger
	PushToken      string          `json:"-"`            // Expo push token, optional
	Timestamps

	// Refresh token state; hash only, the raw token is never stored.
	RefreshTokenHash   string     `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
}

// UserPage is one page of the admin-facing user listing.
type UserPage struct {
	Users       []User `json:"users"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}
