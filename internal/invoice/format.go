package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber renders x with two decimals and a space as the thousands
// separator, e.g. 1234567.891 -> "1 234 567.89".
func FormatNumber(x float64) string {
	s := decimal.NewFromFloat(x).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatCurrency renders an amount followed by the currency symbol.
func FormatCurrency(x float64, c Currency) string {
	return FormatNumber(x) + " " + c.Symbol()
}
