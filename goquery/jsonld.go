package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/giftwatch"
)

var jsonLDScripts = cascadia.MustCompile(`script[type="application/ld+json"]`)

// offerPriceKeys are tried in order on every offer; price wins over lowPrice.
var offerPriceKeys = []string{"price", "lowPrice"}

// JSONLDStrategy reads prices from schema.org Offer and AggregateOffer
// objects embedded as JSON-LD. Blocks that are not valid JSON are skipped.
type JSONLDStrategy struct{}

// NewJSONLDStrategy creates a new JSONLDStrategy.
func NewJSONLDStrategy() *JSONLDStrategy {
	return &JSONLDStrategy{}
}

// Name returns the strategy's identifier.
func (s *JSONLDStrategy) Name() string {
	return "json-ld"
}

// TryExtract walks every JSON-LD block depth-first in document order and
// returns the first offer with a parseable price.
func (s *JSONLDStrategy) TryExtract(doc *goquery.Document) (*giftwatch.PriceResult, bool) {
	var result *giftwatch.PriceResult

	doc.FindMatcher(jsonLDScripts).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}
		root, err := parseJSON(raw)
		if err != nil {
			return true
		}

		root.walk(func(n *jsonNode) bool {
			if n.kind != jsonObject || !isOfferType(n.get("@type")) {
				return true
			}
			for _, key := range offerPriceKeys {
				v := n.get(key)
				if v == nil {
					continue
				}
				price, ok := giftwatch.ParseDecimal(v.text())
				if !ok {
					continue
				}
				result = &giftwatch.PriceResult{
					Price:    price,
					Currency: offerCurrency(n),
					Source:   "json-ld:" + key,
				}
				return false
			}
			return true
		})

		return result == nil
	})

	return result, result != nil
}

// isOfferType reports whether an @type value names Offer or AggregateOffer,
// either bare ("Offer"), as an IRI ("https://schema.org/Offer") or as one
// entry of a type array.
func isOfferType(t *jsonNode) bool {
	if t == nil {
		return false
	}
	switch t.kind {
	case jsonArray:
		for _, item := range t.items {
			if isOfferType(item) {
				return true
			}
		}
		return false
	case jsonScalar:
		s, ok := t.value.(string)
		if !ok {
			return false
		}
		if i := strings.LastIndexAny(s, "/#:"); i >= 0 {
			s = s[i+1:]
		}
		return s == "Offer" || s == "AggregateOffer"
	}
	return false
}

// offerCurrency resolves an offer's currency from priceCurrency, then from
// currency markers anywhere in the offer, then falls back to the default.
func offerCurrency(offer *jsonNode) giftwatch.Currency {
	if pc := offer.get("priceCurrency"); pc != nil && pc.kind == jsonScalar {
		if s, ok := pc.value.(string); ok {
			if c, ok := giftwatch.ParseCurrency(s); ok {
				return c
			}
		}
	}
	if c, ok := giftwatch.PickCurrency(offer.String()); ok {
		return c
	}
	return giftwatch.DefaultCurrency
}
