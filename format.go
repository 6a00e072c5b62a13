package giftwatch

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price the German way: two decimals, a decimal
// comma and dots grouping thousands, e.g. 1234.5 becomes "1.234,50".
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + "," + frac
}

// FormatAmount renders a price followed by its currency code.
func FormatAmount(v float64, c Currency) string {
	if c == "" {
		return FormatPrice(v)
	}
	return FormatPrice(v) + " " + string(c)
}
