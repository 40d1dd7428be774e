package models

import "time"

// RefreshToken stores a hashed representation of a refresh token for session
// rotation and revocation.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string    `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"size:128;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}

// PasswordResetToken is a single-use, short-lived token issued by the
// reset-password flow. Only its hash is stored.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string    `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"size:128;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"default:false"`
}
