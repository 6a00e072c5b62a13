package giftwatch

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimal converts a human-formatted price such as "1.234,56 €" or
// "$1,234.56" into a number. It reports false when the string holds no
// usable positive amount; it never panics on malformed input.
//
// Everything except digits, commas and dots is discarded. A single comma
// combined with dots is disambiguated by position: the rightmost separator
// is the decimal point and the other one groups thousands. A lone comma is
// a decimal comma. Several dots without a comma are read as thousands
// groupings with the last dot as the decimal point, so "1.234.567" parses
// as 1234.567.
func ParseDecimal(s string) (float64, bool) {
	if hasLeadingMinus(s) {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	n := b.String()

	commas := strings.Count(n, ",")
	dots := strings.Count(n, ".")

	switch {
	case commas == 1 && dots >= 1:
		if strings.LastIndex(n, ",") > strings.LastIndex(n, ".") {
			n = strings.ReplaceAll(n, ".", "")
			n = strings.Replace(n, ",", ".", 1)
		} else {
			n = strings.ReplaceAll(n, ",", "")
		}
	case commas == 1:
		n = strings.Replace(n, ",", ".", 1)
	case dots > 1:
		last := strings.LastIndex(n, ".")
		n = strings.ReplaceAll(n[:last], ".", "") + n[last:]
	}

	if n == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(n, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// hasLeadingMinus reports whether the first digit of s carries a minus sign.
// A minus touching the digit is a sign. A minus separated from the digit by
// whitespace is a sign only when nothing but whitespace and currency
// markers comes before it, so "€ - 5" is negative while "Sale - 29,99" is
// not.
func hasLeadingMinus(s string) bool {
	first := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if first < 0 {
		return false
	}
	prefix := s[:first]
	trimmed := strings.TrimRightFunc(prefix, unicode.IsSpace)

	var rest string
	switch {
	case strings.HasSuffix(trimmed, "-"):
		rest = strings.TrimSuffix(trimmed, "-")
	case strings.HasSuffix(trimmed, "−"):
		rest = strings.TrimSuffix(trimmed, "−")
	default:
		return false
	}
	if len(trimmed) == len(prefix) {
		return true
	}
	return onlyCurrencyMarkers(rest)
}

// onlyCurrencyMarkers reports whether s consists of whitespace and currency
// markers alone.
func onlyCurrencyMarkers(s string) bool {
	rest := strings.ToUpper(s)
	for _, c := range currencyMarkers {
		for _, marker := range c.markers {
			rest = strings.ReplaceAll(rest, strings.ToUpper(marker), "")
		}
	}
	return strings.TrimFunc(rest, unicode.IsSpace) == ""
}
