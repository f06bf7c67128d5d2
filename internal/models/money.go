package models

import (
	"math"
	"strconv"
	"strings"
)

// FormatCLP renders v as Chilean pesos: "$1.234.567", no decimals,
// "-$1.234" for negative values.
func FormatCLP(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + groupThousands(strconv.FormatInt(n, 10))
}

// FormatCLPPtr renders nil as "-".
func FormatCLPPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatCLP(*v)
}

// IsNegative reports whether a possibly absent amount is below zero.
func IsNegative(v *float64) bool {
	return v != nil && *v < 0
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
