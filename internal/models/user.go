package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a savings account holder as stored in the users table.
type User struct {
	UserID         string          `db:"user_id"`
	FullName       string          `db:"full_name"`
	Email          string          `db:"email"`
	PasswordHash   string          `db:"password_hash"`
	DeviceID       string          `db:"device_id"`
	DeviceVerified bool            `db:"device_verified"`
	Balance        decimal.Decimal `db:"balance"`
	PushToken      string          `db:"push_token"` // Nullable
	Timestamps

	RefreshTokenHash   string     `db:"refresh_token_hash"`   // Nullable
	RefreshTokenExpiry *time.Time `db:"refresh_token_expiry"` // Nullable
}
