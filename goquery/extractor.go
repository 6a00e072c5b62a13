// Package goquery implements giftwatch.PriceExtractor on top of goquery.
// Extraction runs an ordered chain of strategies over the parsed document
// and returns the first usable price.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.PriceExtractor = (*Extractor)(nil)

// Strategy is one step of the extraction fallback chain.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// TryExtract returns a result and true when the strategy found a
	// usable price in doc.
	TryExtract(doc *goquery.Document) (*giftwatch.PriceResult, bool)
}

// DefaultStrategies returns the standard chain: structured data first,
// then meta tags, then visible text.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewJSONLDStrategy(),
		NewMetaStrategy(),
		NewTextStrategy(),
	}
}

// Extractor runs strategies in order and returns the first usable price.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor creates an Extractor with the given strategies.
// With no arguments it uses DefaultStrategies.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies}
}

// ExtractPrice parses html and runs the strategy chain.
// It returns a "not-found" result when no strategy yields a price.
func (e *Extractor) ExtractPrice(html string) *giftwatch.PriceResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return giftwatch.NotFound()
	}

	for _, s := range e.strategies {
		if result, ok := s.TryExtract(doc); ok && result.Found() {
			return result
		}
	}
	return giftwatch.NotFound()
}
