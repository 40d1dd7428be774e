package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction kinds. Anything else is rejected at the write boundary.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is a recognized transaction kind.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense record belonging to a user.
// Amount is always positive; the kind decides which side of the ledger it
// lands on. Category is referenced by name, not id, mirroring the store schema.
type Transaction struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:1024" json:"description,omitempty"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:64;not null;index" json:"category"`
	Type        string    `gorm:"column:transaction_type;size:16;not null;index" json:"transaction_type"`
	Date        Date      `gorm:"not null;index" json:"date"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
