package scraper

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// Leaf text longer than this is prose, not a price tag
	maxLeafTextLen = 30
	// Values at or above one million are junk matches (order IDs,
	// view counts). This ceiling applies only to the sweep.
	maxSweepPrice = 1_000_000
)

// tryProximitySweep scans every short-text leaf element on the page,
// extracts any price pattern, and keeps the candidate closest to the
// anchor. This is the last-resort strategy for sites with obfuscated
// CSS class names (Wayfair, most CSS-in-JS storefronts) where the
// selector pool matches nothing.
func tryProximitySweep(doc *goquery.Document, anchor *html.Node) *Result {
	bestDist := disconnectedDistance + 1
	var best *Result

	for _, n := range doc.Find("*").Nodes {
		if skipTags[n.Data] {
			continue
		}
		// Leaf-ish only: elements with child tags are containers
		if hasElementChildren(n) {
			continue
		}
		text := nodeText(n)
		if text == "" || utf8.RuneCountInString(text) > maxLeafTextLen {
			continue
		}

		price, ok := ParsePriceText(text)
		if !ok || price <= 0 || price >= maxSweepPrice {
			continue
		}

		dist := 0
		if anchor != nil {
			dist = domDistance(n, anchor)
		}
		if dist < bestDist {
			bestDist = dist
			best = &Result{Price: price, Currency: DetectCurrency(text)}
		}
	}

	return best
}
