package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/giftwatch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxTextLength caps the visible text, in characters, that TextStrategy
// scans on a single page.
const MaxTextLength = 200_000

// amount matches a grouped-thousands number with optional two decimals.
const amount = `(\d{1,3}([.,]\d{3})*([.,]\d{2})?)`

// gap allows one optional space, including non-breaking ones, between an
// amount and its currency marker.
const gap = `[\s\p{Zs}]?`

// textPatterns are tried in order; the first match wins.
var textPatterns = []struct {
	re       *regexp.Regexp
	currency giftwatch.Currency
}{
	{regexp.MustCompile(`(?i)` + amount + gap + `€`), giftwatch.EUR},
	{regexp.MustCompile(`(?i)\$` + gap + amount), giftwatch.USD},
	{regexp.MustCompile(`(?i)` + amount + gap + `CHF`), giftwatch.CHF},
	{regexp.MustCompile(`(?i)£` + gap + amount), giftwatch.GBP},
}

// TextStrategy looks for amounts next to currency markers in the page's
// visible text.
type TextStrategy struct {
	maxLength int
}

// NewTextStrategy creates a new TextStrategy scanning at most MaxTextLength
// characters.
func NewTextStrategy() *TextStrategy {
	return &TextStrategy{maxLength: MaxTextLength}
}

// Name returns the strategy's identifier.
func (s *TextStrategy) Name() string {
	return "text"
}

// TryExtract applies the currency patterns to the visible text.
func (s *TextStrategy) TryExtract(doc *goquery.Document) (*giftwatch.PriceResult, bool) {
	text := VisibleText(doc, s.maxLength)
	if text == "" {
		return nil, false
	}

	for _, p := range textPatterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		price, ok := giftwatch.ParseDecimal(match)
		if !ok {
			continue
		}
		return &giftwatch.PriceResult{
			Price:    price,
			Currency: p.currency,
			Source:   "text:" + strings.ToLower(string(p.currency)),
		}, true
	}
	return nil, false
}

// skippedElements hold text that is never rendered.
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Noscript: true,
}

// VisibleText returns the document's text nodes, each trimmed and joined by
// a single space, truncated to maxLength characters.
func VisibleText(doc *goquery.Document, maxLength int) string {
	var sb strings.Builder
	var length int

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		switch n.Type {
		case html.TextNode:
			s := strings.TrimSpace(n.Data)
			if s == "" {
				return true
			}
			if length > 0 {
				if length+1 > maxLength {
					return false
				}
				sb.WriteByte(' ')
				length++
			}
			if count := utf8.RuneCountInString(s); length+count > maxLength {
				s = truncateRunes(s, maxLength-length)
			}
			sb.WriteString(s)
			length += utf8.RuneCountInString(s)
			return length < maxLength
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return true
			}
		case html.CommentNode, html.DoctypeNode:
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}

	for _, n := range doc.Nodes {
		if !walk(n) {
			break
		}
	}
	return sb.String()
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
