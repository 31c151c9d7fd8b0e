package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Foundation is the tenant boundary. Every donor, donation and user belongs to one.
type Foundation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Foundation) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Models lists every persisted model in migration order
func Models() []any {
	return []any{&Foundation{}, &User{}, &Donor{}, &Donation{}}
}
