package utils

import (
	"strconv"
	"strings"
)

// FormatPEN formats an amount in soles as a string like "S/ 12,500.50".
// Uses comma as thousands separator and always two decimals. Only used for
// human-readable log lines and messages; stored amounts stay numeric.
func FormatPEN(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart := s
	fracPart := "00"
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot+1:]
	}

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 6)
	if neg {
		b.WriteString("-S/ ")
	} else {
		b.WriteString("S/ ")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)

	return b.String()
}
