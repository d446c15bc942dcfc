// Package currency converts between pt-BR formatted monetary strings and
// float64 amounts. Thousands are grouped with dots, the decimal separator is
// a comma, and values always render with exactly two decimal digits.
package currency

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v as a pt-BR monetary string, e.g. 1234.5 -> "1.234,50".
func Format(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// Parse converts a pt-BR monetary string back to a float64. Dots are treated
// as thousands separators and the first comma as the decimal separator.
// Unparseable input yields zero so a user typo never aborts an edit.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCents interprets free-typed input cents-first: every digit is kept,
// everything else is discarded, and the rightmost two digits are the cents.
// "12a34" -> 12.34, "1.234,56" -> 1234.56.
func ParseCents(s string) float64 {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / 100
}
