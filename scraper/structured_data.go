package scraper

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDCandidate is one valid Product entry pulled from an embedded
// JSON-LD block
type jsonLDCandidate struct {
	name     string
	price    float64
	currency string
	urlMatch bool
}

// tryStructuredData extracts price/name/currency from JSON-LD Schema.org
// Product data. All Product entries on the page are collected, then the
// first one whose declared url/@id path matches the page URL is preferred:
// that ignores prices of recommended/related products embedded on the same
// page. Falls back to the first valid entry if none match. Blocks that
// fail to parse or are not Products are skipped, never fatal.
func tryStructuredData(doc *goquery.Document, pageURL string) *Result {
	pagePath := ""
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			pagePath = strings.TrimRight(u.Path, "/")
		}
	}

	var candidates []jsonLDCandidate
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		entry := parseJSONLDBlock(s.Text())
		if entry == nil {
			return
		}
		if t, _ := entry["@type"].(string); t != "Product" {
			return
		}

		// An offers price that is missing, empty or unparseable falls
		// through to the entry-level price
		offers := asJSONLDObject(entry["offers"])
		price, ok := jsonPrice(offers["price"])
		if !ok {
			price, ok = jsonPrice(entry["price"])
		}
		if !ok || price <= 0 {
			return
		}

		currency, _ := offers["priceCurrency"].(string)
		if currency == "" {
			currency = "USD"
		}
		name, _ := entry["name"].(string)

		ldURLRaw, _ := entry["url"].(string)
		if ldURLRaw == "" {
			ldURLRaw, _ = entry["@id"].(string)
		}
		ldPath := ldURLRaw
		if strings.HasPrefix(ldURLRaw, "http") {
			if u, err := url.Parse(ldURLRaw); err == nil {
				ldPath = u.Path
			}
		}
		ldPath = strings.TrimRight(ldPath, "/")

		candidates = append(candidates, jsonLDCandidate{
			name:     strings.TrimSpace(name),
			price:    price,
			currency: currency,
			urlMatch: pagePath != "" && ldPath != "" && pagePath == ldPath,
		})
	})

	if len(candidates) == 0 {
		return nil
	}

	chosen := candidates[0]
	for _, c := range candidates {
		if c.urlMatch {
			chosen = c
			break
		}
	}
	return &Result{Name: chosen.name, Price: chosen.price, Currency: chosen.currency}
}

// parseJSONLDBlock parses a raw JSON-LD block. Top-level arrays resolve
// to their first element. Returns nil for anything unparseable.
func parseJSONLDBlock(raw string) map[string]interface{} {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return asJSONLDObject(data)
}

// asJSONLDObject resolves a decoded value to an object, taking the
// first element of arrays. Returns an empty map for other shapes so
// lookups on it simply miss.
func asJSONLDObject(data interface{}) map[string]interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]interface{}); ok {
				return m
			}
		}
	}
	return map[string]interface{}{}
}

// jsonPrice converts a JSON-LD price value (string or number) to float64
func jsonPrice(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
