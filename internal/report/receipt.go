package report

import (
	"time"

	"donation_system/internal/domain"
)

// Receipt is everything the console needs to print a donation receipt
type Receipt struct {
	ReceiptNo     string           `json:"receiptNo"`
	Donation      *domain.Donation `json:"donation"`
	AmountInWords string           `json:"amountInWords"`
	IssuedOn      string           `json:"issuedOn"`
}

// NewReceipt builds the receipt for d. The receipt number is the donation
// date followed by the first block of the donation id.
func NewReceipt(d *domain.Donation, issued time.Time) (*Receipt, error) {
	words, err := AmountInWords(d.Amount)
	if err != nil {
		return nil, err
	}
	short := d.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return &Receipt{
		ReceiptNo:     d.DonationDate.Format("20060102") + "-" + short,
		Donation:      d,
		AmountInWords: words,
		IssuedOn:      issued.Format(dateLayout),
	}, nil
}
