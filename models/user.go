package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User model. Identified by email; the uuid primary key is what every other
// record is scoped by.
type User struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
	DeletedAt      *time.Time `gorm:"index" json:"-"`
	Email          string     `gorm:"size:255;not null;unique" json:"email"`
	FullName       string     `gorm:"size:255" json:"full_name"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	LastSignInAt   *time.Time `json:"last_sign_in_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
