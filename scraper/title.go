package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fallback product name when nothing on the page yields one
const unknownProductName = "Unknown Product"

// extractTitle returns a best-effort product display name, independent
// of price extraction.
//
// Priority: JSON-LD Product name, h1, OpenGraph title, page <title>.
// The h1 deliberately outranks OpenGraph because og:title frequently
// carries brand prefixes and site suffixes ("Brand X Widget | Wayfair")
// while the h1 holds the product title as shown on the page.
func extractTitle(doc *goquery.Document) string {
	title := ""
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		entry := parseJSONLDBlock(s.Text())
		if entry == nil {
			return true
		}
		if t, _ := entry["@type"].(string); t != "Product" {
			return true
		}
		if name, _ := entry["name"].(string); strings.TrimSpace(name) != "" {
			title = strings.TrimSpace(name)
			return false
		}
		return true
	})
	if title != "" {
		return title
	}

	if h1 := firstHeading(doc); h1 != nil {
		if text := nodeText(h1); text != "" {
			return text
		}
	}

	if og, ok := doc.Find(`meta[property="og:title"], meta[name="og:title"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(og); trimmed != "" {
			return trimmed
		}
	}

	if nodes := doc.Find("title").Nodes; len(nodes) > 0 {
		if text := nodeText(nodes[0]); text != "" {
			return text
		}
	}

	return unknownProductName
}
