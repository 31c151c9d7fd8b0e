package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"donation_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{15, "Fifteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{500, "Five Hundred"},
		{1001, "One Thousand One"},
		{12345, "Twelve Thousand Three Hundred Forty Five"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{123456789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine"},
		{MaxWordsValue, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{-42, "Minus Forty Two"},
	}
	for _, tt := range tests {
		got, err := NumberToWords(tt.n)
		require.NoError(t, err, tt.n)
		assert.Equal(t, tt.want, got, tt.n)
	}

	_, err := NumberToWords(MaxWordsValue + 1)
	assert.Error(t, err)
	_, err = NumberToWords(-MaxWordsValue - 1)
	assert.Error(t, err)
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{500, "Five Hundred Rupees Only"},
		{1, "One Rupee Only"},
		{1500.5, "One Thousand Five Hundred Rupees and Fifty Paise Only"},
		{0.75, "Zero Rupees and Seventy Five Paise Only"},
		{10.01, "Ten Rupees and One Paise Only"},
	}
	for _, tt := range tests {
		got, err := AmountInWords(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := AmountInWords(-1)
	assert.Error(t, err)

	got, err := AmountInWords(MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Rupees and Ninety Nine Paise Only", got)
	_, err = AmountInWords(1_000_000_000)
	assert.Error(t, err)
}

func TestWriteDonationsCSV(t *testing.T) {
	tx := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	donations := []domain.Donation{
		{
			Audit:            domain.Audit{ID: "d-1", CreatedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
			Donor:            &domain.Donor{FullName: "Jane, Doe", PAN: "ABCDE1234F"},
			Amount:           1500.5,
			Type:             domain.DonationOnline,
			BankName:         "State Bank",
			UTR:              "UTR1",
			IFSC:             "SBIN0001",
			DonationDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			TransactionDate:  &tx,
			DonationReceived: domain.ReceiptReceived,
			IsPrinted:        true,
		},
		{
			Audit:            domain.Audit{ID: "d-2"},
			Amount:           10,
			Type:             domain.DonationCash,
			DonationReceived: domain.ReceiptPending,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDonationsCSV(&buf, donations))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, DonationCSVHeader, rows[0])
	assert.Equal(t, []string{
		"d-1", "Jane, Doe", "ABCDE1234F", "1500.50", "ONLINE", "State Bank", "UTR1", "SBIN0001",
		"2024-01-15", "2024-01-16", "RECEIVED", "true", "2024-01-15T08:00:00Z",
	}, rows[1])
	assert.Equal(t, "", rows[2][1], "no donor loaded")
	assert.Equal(t, "", rows[2][9], "no transaction date")
	assert.Equal(t, "10.00", rows[2][3])
}

func TestNewReceipt(t *testing.T) {
	d := &domain.Donation{
		Audit:        domain.Audit{ID: "0f3c9a7e-1111-2222-3333-444455556666"},
		Amount:       2500,
		DonationDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	r, err := NewReceipt(d, time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "20240305-0f3c9a7e", r.ReceiptNo)
	assert.Equal(t, "Two Thousand Five Hundred Rupees Only", r.AmountInWords)
	assert.Equal(t, "2024-03-07", r.IssuedOn)
	assert.Same(t, d, r.Donation)
}
