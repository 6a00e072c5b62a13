package giftwatch

import "strings"

// Currency is an ISO 4217 code from the closed set of supported currencies.
type Currency string

// Supported currencies.
const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	CHF Currency = "CHF"
	GBP Currency = "GBP"
)

// DefaultCurrency is used when a price is found but no currency can be
// determined.
const DefaultCurrency = EUR

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{EUR, USD, CHF, GBP}

// ParseCurrency returns the supported currency matching code.
// Matching is case-insensitive and ignores surrounding whitespace.
// Codes outside the supported set report false.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	for _, known := range Currencies {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Validate returns an error if the currency is not supported.
func (c Currency) Validate() error {
	if p, ok := ParseCurrency(string(c)); !ok || p != c {
		return Errorf(EINVALID, "unsupported currency %q", string(c))
	}
	return nil
}

// currencyMarkers maps each currency to the symbols and codes that identify
// it in free text, in detection order.
var currencyMarkers = []struct {
	currency Currency
	markers  []string
}{
	{EUR, []string{"€", "EUR"}},
	{USD, []string{"$", "USD"}},
	{CHF, []string{"CHF"}},
	{GBP, []string{"£", "GBP"}},
}

// PickCurrency scans text for a currency symbol or code.
// The scan is case-insensitive and checks EUR, USD, CHF and GBP in that
// order; the first currency with any marker present wins regardless of
// where it appears in the text. Reports false if none is present.
func PickCurrency(text string) (Currency, bool) {
	if text == "" {
		return "", false
	}
	upper := strings.ToUpper(text)
	for _, cm := range currencyMarkers {
		for _, marker := range cm.markers {
			if strings.Contains(upper, marker) {
				return cm.currency, true
			}
		}
	}
	return "", false
}
