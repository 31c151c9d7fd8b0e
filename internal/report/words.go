// Package report builds the printable and exportable views of donations.
package report

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// MaxWordsValue is the largest magnitude NumberToWords accepts (99 crore and change)
const MaxWordsValue = 999_999_999

// MaxAmount is the largest rupee amount AmountInWords can spell
const MaxAmount = 999_999_999.99

var (
	ones = [...]string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tens = [...]string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
)

func twoDigits(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

func threeDigits(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" Hundred")
	}
	if rem := n % 100; rem > 0 {
		parts = append(parts, twoDigits(rem))
	}
	return strings.Join(parts, " ")
}

// NumberToWords spells n using Indian grouping (crore, lakh, thousand).
func NumberToWords(n int64) (string, error) {
	if n > MaxWordsValue || n < -MaxWordsValue {
		return "", errors.Errorf("value %d out of range", n)
	}
	if n == 0 {
		return "Zero", nil
	}
	negative := n < 0
	if negative {
		n = -n
	}

	groups := []struct {
		div  int64
		name string
	}{
		{10_000_000, "Crore"},
		{100_000, "Lakh"},
		{1_000, "Thousand"},
	}
	var parts []string
	for _, g := range groups {
		if q := n / g.div; q > 0 {
			parts = append(parts, threeDigits(q)+" "+g.name)
			n %= g.div
		}
	}
	if n > 0 {
		parts = append(parts, threeDigits(n))
	}

	words := strings.Join(parts, " ")
	if negative {
		return "Minus " + words, nil
	}
	return words, nil
}

// AmountInWords renders a rupee amount the way receipts print it,
// e.g. 1500.5 -> "One Thousand Five Hundred Rupees and Fifty Paise Only".
func AmountInWords(amount float64) (string, error) {
	if amount < 0 || amount > MaxAmount || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", errors.Errorf("invalid amount %v", amount)
	}
	paiseTotal := int64(math.Round(amount * 100))
	rupees, paise := paiseTotal/100, paiseTotal%100

	r, err := NumberToWords(rupees)
	if err != nil {
		return "", err
	}
	out := r + " Rupees"
	if rupees == 1 {
		out = r + " Rupee"
	}
	if paise > 0 {
		out += " and " + twoDigits(paise) + " Paise"
	}
	return out + " Only", nil
}
