package mapping

import (
	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/SscSPs/savr_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		FullName:       d.FullName,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		DeviceID:       d.DeviceID,
		DeviceVerified: d.DeviceVerified,
		Balance:        d.Balance,
		PushToken:      d.PushToken,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		RefreshTokenHash:   d.RefreshTokenHash,
		RefreshTokenExpiry: d.RefreshTokenExpiry,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		FullName:       m.FullName,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		DeviceID:       m.DeviceID,
		DeviceVerified: m.DeviceVerified,
		Balance:        m.Balance,
		PushToken:      m.PushToken,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		RefreshTokenHash:   m.RefreshTokenHash,
		RefreshTokenExpiry: m.RefreshTokenExpiry,
	}
}
