package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric price patterns tried in order: first match wins, not best match.
// Symbol- and code-qualified forms come before the bare decimal fallback.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d{1,6}(?:,\d{3})*(?:\.\d{2})?)`),     // $1,234.56
	regexp.MustCompile(`(\d{1,6}(?:,\d{3})*(?:\.\d{2})?)\s*USD`),    // 1234.56 USD
	regexp.MustCompile(`USD\s*(\d{1,6}(?:,\d{3})*(?:\.\d{2})?)`),    // USD 1234.56
	regexp.MustCompile(`£\s*(\d{1,6}(?:,\d{3})*(?:\.\d{2})?)`),      // £999.99
	regexp.MustCompile(`€\s*(\d{1,6}(?:[.,]\d{3})*(?:[.,]\d{2})?)`), // €1.234,56 or €1,234.56
	regexp.MustCompile(`(\d{1,6}(?:,\d{3})*\.\d{2})`),               // bare decimal fallback
}

// ParsePriceText pulls the first recognisable price out of an arbitrary
// text fragment. Whitespace and newlines are collapsed before matching.
// Returns false when no pattern matches or the numeric parse fails.
func ParsePriceText(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	text = strings.Join(strings.Fields(text), " ")

	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := normalizeNumber(m[1])
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return value, true
	}
	return 0, false
}

// normalizeNumber converts a matched numeric string to strconv form.
// European format ("." thousands, "," decimal) is detected either by
// multiple dots surviving comma-removal or by a decimal comma sitting
// after the last dot, as in "1.234,56".
func normalizeNumber(raw string) string {
	multipleDots := strings.Count(strings.ReplaceAll(raw, ",", ""), ".") > 1
	decimalComma := strings.Contains(raw, ",") && strings.Contains(raw, ".") &&
		strings.LastIndex(raw, ",") > strings.LastIndex(raw, ".")

	if multipleDots || decimalComma {
		raw = strings.ReplaceAll(raw, ".", "")
		return strings.ReplaceAll(raw, ",", ".")
	}
	return strings.ReplaceAll(raw, ",", "")
}

// DetectCurrency infers the currency from symbols present in the
// fragment, defaulting to USD
func DetectCurrency(text string) string {
	if strings.Contains(text, "£") {
		return "GBP"
	}
	if strings.Contains(text, "€") {
		return "EUR"
	}
	return "USD"
}
