package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// findAnchor returns the element whose text most tightly matches the
// product name, to be used as the proximity reference for price scoring.
//
// Every visible element is scored by the ratio len(name) / len(text).
// A score of 1.0 means the element's entire text IS the product name;
// large containers that merely contain the name somewhere score much
// lower, so the anchor ends up at the tightest title element on the page
// rather than a wrapper div. Ties keep the earliest element in document
// order because replacement requires a strictly greater score.
//
// With an empty hint the first h1 is used, or the document root if the
// page has none. With a hint that matches nothing the first h1 is used,
// which may be nil; positional scoring then degrades to distance zero.
func findAnchor(doc *goquery.Document, productName string) *html.Node {
	needle := strings.ToLower(strings.TrimSpace(productName))
	if needle == "" {
		if h1 := firstHeading(doc); h1 != nil {
			return h1
		}
		if len(doc.Nodes) > 0 {
			return doc.Nodes[0]
		}
		return nil
	}

	var best *html.Node
	bestScore := 0.0

	for _, n := range doc.Find("*").Nodes {
		if skipTags[n.Data] {
			continue
		}
		text := nodeText(n)
		if text == "" {
			continue
		}
		textLower := strings.ToLower(text)
		if !strings.Contains(textLower, needle) {
			continue
		}
		score := float64(len(needle)) / float64(len(textLower))
		if score > bestScore {
			bestScore = score
			best = n
		}
	}

	if best != nil {
		return best
	}
	return firstHeading(doc)
}
