package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result is a successful product extraction
type Result struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// ExtractProduct runs the extraction pipeline over already-fetched HTML
// and returns the product's name, price and currency, or nil when no
// price can be found. A nil result is a normal outcome, not an error;
// every internal failure (unparseable page, malformed structured data)
// is absorbed and converted into "try the next strategy" or nil.
//
// productNameHint, when non-empty, locates the element on the page whose
// text most tightly matches it; that element anchors the positional
// strategies so the right price wins even when the page carries many
// others (recommendations, carousels, sidebars). The anchor is resolved
// exactly once per call and threaded into each strategy.
//
// Strategies in priority order, first success wins:
//  1. JSON-LD structured data, validated against the page URL
//  2. CSS selector heuristics scored by DOM distance to the anchor
//  3. Full proximity sweep over short leaf text nodes
func ExtractProduct(pageURL, htmlText, productNameHint string) *Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}

	anchor := findAnchor(doc, productNameHint)

	if result := tryStructuredData(doc, pageURL); result != nil {
		if result.Name == "" {
			result.Name = extractTitle(doc)
		}
		return result
	}

	if result := trySelectors(doc, anchor); result != nil {
		result.Name = extractTitle(doc)
		return result
	}

	if result := tryProximitySweep(doc, anchor); result != nil {
		result.Name = extractTitle(doc)
		return result
	}

	return nil
}
