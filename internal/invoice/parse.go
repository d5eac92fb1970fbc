package invoice

import (
	"math"
	"strconv"
	"strings"
)

// ParseVAT reads a VAT value typed into a form field. A value that starts
// with a number is a rate, so "23" and "23%" are both 23%. Everything else
// is kept as a code.
func ParseVAT(s string) VAT {
	if rate, ok := numberPrefix(s); ok {
		return NumericVAT(rate)
	}
	return ExemptVAT(s)
}

// ParseAmount reads a quantity or price typed into a form field, reading
// the leading number and ignoring what follows. No number reads as 0.
func ParseAmount(s string) float64 {
	n, _ := numberPrefix(s)
	return n
}

// numberPrefix parses the longest decimal number at the start of s after
// leading white space: an optional sign, digits with an optional fraction,
// and an exponent only when digits follow it.
func numberPrefix(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v\u00a0\ufeff")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
