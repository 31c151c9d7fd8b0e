package domain

import "time"

// DonationType is how the money was paid
type DonationType string

const (
	DonationCash   DonationType = "CASH"
	DonationCheque DonationType = "CHEQUE"
	DonationOnline DonationType = "ONLINE"
)

func (t DonationType) Valid() bool {
	return t == DonationCash || t == DonationCheque || t == DonationOnline
}

// ReceiptStatus tracks whether the funds have actually arrived
type ReceiptStatus string

const (
	ReceiptPending  ReceiptStatus = "PENDING"
	ReceiptReceived ReceiptStatus = "RECEIVED"
)

func (s ReceiptStatus) Valid() bool {
	return s == ReceiptPending || s == ReceiptReceived
}

// Donation Model
type Donation struct {
	Audit
	DonorID          string        `gorm:"size:36;index;not null" json:"donorId"`                  // Foreign key to Donor
	Donor            *Donor        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"donor,omitempty"`
	Amount           float64       `gorm:"type:decimal(12,2);not null" json:"amount"`              // Always positive
	Type             DonationType  `gorm:"size:16;not null" json:"type"`                           // CASH, CHEQUE or ONLINE
	BankName         string        `gorm:"size:128" json:"bankName,omitempty"`                     // Required unless CASH
	UTR              string        `gorm:"column:utr;size:64" json:"utr,omitempty"`                // Required unless CASH
	IFSC             string        `gorm:"column:ifsc;size:16" json:"ifsc,omitempty"`              // Required unless CASH
	DonationDate     time.Time     `gorm:"not null" json:"donationDate"`                           // Date pledged or given
	TransactionDate  *time.Time    `json:"transactionDate"`                                        // Set iff RECEIVED
	DonationReceived ReceiptStatus `gorm:"size:16;not null;default:PENDING" json:"donationReceived"` // PENDING or RECEIVED
	IsPrinted        bool          `gorm:"not null;default:false" json:"isPrinted"`                // Receipt printed
}

func (Donation) TableName() string { return "donations" }
