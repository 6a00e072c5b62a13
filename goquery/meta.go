package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/giftwatch"
)

// metaCandidate is a <meta> tag identified by one attribute/value pair.
type metaCandidate struct {
	value    string
	selector cascadia.Selector
}

func newMetaCandidate(attr, value string) metaCandidate {
	return metaCandidate{
		value:    value,
		selector: cascadia.MustCompile(`meta[` + attr + `="` + value + `"]`),
	}
}

// metaCandidates lists the price meta tags in probe order.
var metaCandidates = []metaCandidate{
	newMetaCandidate("property", "product:price:amount"),
	newMetaCandidate("property", "og:price:amount"),
	newMetaCandidate("property", "product:price"),
	newMetaCandidate("name", "twitter:data1"),
	newMetaCandidate("name", "price"),
}

// MetaStrategy reads prices from the <meta> tags shops publish for
// Open Graph, product and Twitter cards.
type MetaStrategy struct{}

// NewMetaStrategy creates a new MetaStrategy.
func NewMetaStrategy() *MetaStrategy {
	return &MetaStrategy{}
}

// Name returns the strategy's identifier.
func (s *MetaStrategy) Name() string {
	return "meta"
}

// TryExtract probes the candidate tags in order. Only the first tag of each
// kind is considered and it must have non-empty content.
func (s *MetaStrategy) TryExtract(doc *goquery.Document) (*giftwatch.PriceResult, bool) {
	for _, c := range metaCandidates {
		content, ok := doc.FindMatcher(c.selector).First().Attr("content")
		if !ok || content == "" {
			continue
		}
		price, ok := giftwatch.ParseDecimal(content)
		if !ok {
			continue
		}
		currency, ok := giftwatch.PickCurrency(content)
		if !ok {
			currency = giftwatch.DefaultCurrency
		}
		return &giftwatch.PriceResult{
			Price:    price,
			Currency: currency,
			Source:   "meta:" + c.value,
		}, true
	}
	return nil, false
}
