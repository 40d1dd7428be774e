package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a spending/income category. A nil UserID marks a default
// (global) category visible to every user; otherwise the category is custom
// and visible only to its owner. Name uniqueness within the custom tier is
// backed by the composite index; the default tier is a seeded, fixed set.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_category_owner_name" json:"name"`
	Icon      string    `gorm:"size:16" json:"icon"`
	Color     string    `gorm:"size:16" json:"color"`
	UserID    *string   `gorm:"type:uuid;index;uniqueIndex:idx_category_owner_name" json:"user_id,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsDefault reports whether the category belongs to the global default tier.
func (c Category) IsDefault() bool {
	return c.UserID == nil
}
