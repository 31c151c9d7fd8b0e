package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit holds the columns shared by every soft-deletable, tenant-scoped entity.
// Only the repository layer writes FoundationID, IsDeleted, CreatedBy and UpdatedBy.
type Audit struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	FoundationID string    `gorm:"size:36;index;not null" json:"foundationId"`
	IsDeleted    bool      `gorm:"not null;default:false;index" json:"isDeleted"`
	CreatedBy    string    `gorm:"size:36" json:"createdBy"`
	UpdatedBy    string    `gorm:"size:36" json:"updatedBy"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuditFields exposes the audit block to the generic repository
func (a *Audit) AuditFields() *Audit { return a }

func (a *Audit) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
