package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrDeviceNotVerified indicates the user's device has not been verified by an admin.
// Device verification gates every balance-mutating operation.
var ErrDeviceNotVerified = errors.New("device not verified")

// ErrInsufficientBalance indicates a withdrawal larger than the current balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrConflict indicates a concurrent-update conflict that persisted after retries.
var ErrConflict = errors.New("write conflict")

// ErrStorageUnavailable indicates a transient storage fault; the caller may retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrRefreshTokenExpired indicates the stored refresh token has passed its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
