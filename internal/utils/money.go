package utils

import (
	"strconv"
	"strings"
)

// FormatAmount renders an integer amount with thousand separators for
// printed documents.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount)
}

// ParseAmount parses "1.000" or "1,000" style input into an integer amount.
func ParseAmount(s string) (int64, error) {
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
