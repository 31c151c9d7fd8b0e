package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"donation_system/internal/domain"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// DonationCSVHeader is the first row of the donation report export
var DonationCSVHeader = []string{
	"ID", "Donor Name", "PAN", "Amount", "Type", "Bank Name", "UTR", "IFSC",
	"Donation Date", "Transaction Date", "Status", "Printed", "Created At",
}

// WriteDonationsCSV writes the donation report, one row per donation
func WriteDonationsCSV(w io.Writer, donations []domain.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DonationCSVHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, d := range donations {
		var donorName, pan string
		if d.Donor != nil {
			donorName, pan = d.Donor.FullName, d.Donor.PAN
		}
		var txDate string
		if d.TransactionDate != nil {
			txDate = d.TransactionDate.Format(dateLayout)
		}
		row := []string{
			d.ID,
			donorName,
			pan,
			strconv.FormatFloat(d.Amount, 'f', 2, 64),
			string(d.Type),
			d.BankName,
			d.UTR,
			d.IFSC,
			d.DonationDate.Format(dateLayout),
			txDate,
			string(d.DonationReceived),
			strconv.FormatBool(d.IsPrinted),
			d.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}
