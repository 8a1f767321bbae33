package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// priceSelector pairs a CSS selector with where the price text lives:
// an attribute name, or "" for the element's visible text
type priceSelector struct {
	query string
	attr  string
}

// Selector pool in decreasing specificity: structured-data attributes,
// known-marketplace selectors, then common e-commerce class patterns.
var priceSelectors = []priceSelector{
	// Schema.org microdata attributes
	{`[itemprop="price"]`, "content"},
	{`[itemprop="price"]`, ""},
	// OpenGraph meta tags
	{`meta[property="product:price:amount"]`, "content"},
	{`meta[property="og:price:amount"]`, "content"},
	// Amazon
	{`#priceblock_ourprice`, ""},
	{`#priceblock_dealprice`, ""},
	{`.a-price > .a-offscreen`, ""},
	{`#price_inside_buybox`, ""},
	// Best Buy
	{`.priceView-hero-price span[aria-hidden="true"]`, ""},
	// data-test-id / data-testid attributes (Wayfair, Target, many React apps)
	{`[data-test-id*="Price"]`, ""},
	{`[data-test-id*="price"]`, ""},
	{`[data-testid*="Price"]`, ""},
	{`[data-testid*="price"]`, ""},
	{`[data-name-id*="Price"]`, ""},
	// Generic e-commerce patterns
	{`.product-price`, ""},
	{`.price--main`, ""},
	{`.price-box .price`, ""},
	{`.woocommerce-Price-amount`, ""},
	{`[class*="ProductPrice"]`, ""},
	{`[class*="product-price"]`, ""},
	{`[class*="current-price"]`, ""},
	{`[class*="sale-price"]`, ""},
	{`#price`, ""},
	{`.price`, ""},
}

// trySelectors evaluates the whole selector pool and keeps the single
// candidate closest to the anchor. Unlike the structured-data strategy
// this is not first-match-wins: the main product price is almost always
// the one nearest the product title in the DOM, while related-product
// prices live in separate subtrees.
func trySelectors(doc *goquery.Document, anchor *html.Node) *Result {
	bestDist := disconnectedDistance + 1
	var best *Result

	for _, ps := range priceSelectors {
		for _, n := range doc.Find(ps.query).Nodes {
			var raw string
			if ps.attr == "" {
				raw = nodeText(n)
			} else {
				raw = getAttr(n, ps.attr)
			}

			price, ok := ParsePriceText(raw)
			if !ok || price <= 0 {
				continue
			}

			dist := 0
			if anchor != nil {
				dist = domDistance(n, anchor)
			}
			if dist < bestDist {
				bestDist = dist
				best = &Result{Price: price, Currency: DetectCurrency(raw)}
			}
		}
	}

	return best
}
