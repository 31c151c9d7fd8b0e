package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`                 // Primary key
	Username     string     `gorm:"uniqueIndex;size:64;not null" json:"username"` // Unique username
	PasswordHash string     `gorm:"not null" json:"-"`                            // bcrypt hash, never serialised
	Role         Role       `gorm:"size:16;default:user" json:"role"`             // Role: user or admin
	FoundationID string     `gorm:"size:36;index;not null" json:"foundationId"`   // Owning foundation
	Foundation   Foundation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the public projection returned after registration
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
