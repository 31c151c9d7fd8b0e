package domain

import "strings"

// Donor Model
type Donor struct {
	Audit
	FullName string `gorm:"size:128;not null;index" json:"fullName"` // Donor display name
	Address1 string `gorm:"size:255;not null" json:"address1"`       // Address line 1
	Address2 string `gorm:"size:255" json:"address2,omitempty"`      // Address line 2
	PAN      string `gorm:"column:pan;size:10;index" json:"pan"`     // Tax identity reference
	Phone    string `gorm:"size:32" json:"phone,omitempty"`          // Contact number
	Country  string `gorm:"size:64;not null" json:"country"`
	State    string `gorm:"size:64;not null" json:"state"`
	City     string `gorm:"size:64;not null" json:"city"`
}

func (Donor) TableName() string { return "donors" }

// NormalizePAN trims and uppercases a PAN for storage and lookup
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}

// DonorRef is the short donor projection used by PAN lookups
type DonorRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	PAN      string `json:"pan"`
}

// Ref returns the short projection of d
func (d *Donor) Ref() DonorRef {
	return DonorRef{ID: d.ID, FullName: d.FullName, PAN: d.PAN}
}
