package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryStructuredData_Product(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@context":"https://schema.org","@type":"Product","name":"Widget",
		 "url":"https://x/widget",
		 "offers":{"@type":"Offer","price":"19.99","priceCurrency":"USD"}}
		</script>
	</head><body></body></html>`)

	result := tryStructuredData(doc, "https://x/widget")
	require.NotNil(t, result)
	assert.Equal(t, "Widget", result.Name)
	assert.InDelta(t, 19.99, result.Price, 0.001)
	assert.Equal(t, "USD", result.Currency)
}

func TestTryStructuredData_PrefersURLMatch(t *testing.T) {
	// The related-product block comes first in document order but only
	// the entry whose url matches the page path should win
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Product","name":"Related Thing","url":"https://x/related",
		 "offers":{"price":"9.99","priceCurrency":"USD"}}
		</script>
		<script type="application/ld+json">
		{"@type":"Product","name":"Main Thing","url":"https://x/main/",
		 "offers":{"price":"49.00","priceCurrency":"GBP"}}
		</script>
	</head></html>`)

	result := tryStructuredData(doc, "https://x/main")
	require.NotNil(t, result)
	assert.Equal(t, "Main Thing", result.Name)
	assert.InDelta(t, 49.00, result.Price, 0.001)
	assert.Equal(t, "GBP", result.Currency)
}

func TestTryStructuredData_NoURLMatchUsesFirstValid(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Product","name":"First","offers":{"price":"10.00"}}
		</script>
		<script type="application/ld+json">
		{"@type":"Product","name":"Second","offers":{"price":"20.00"}}
		</script>
	</head></html>`)

	result := tryStructuredData(doc, "https://x/page")
	require.NotNil(t, result)
	assert.Equal(t, "First", result.Name)
	assert.InDelta(t, 10.00, result.Price, 0.001)
	assert.Equal(t, "USD", result.Currency)
}

func TestTryStructuredData_SkipsMalformedBlocks(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">{not valid json</script>
		<script type="application/ld+json">
		{"@type":"Product","name":"Survivor","offers":{"price":15.50,"priceCurrency":"EUR"}}
		</script>
	</head></html>`)

	result := tryStructuredData(doc, "")
	require.NotNil(t, result)
	assert.Equal(t, "Survivor", result.Name)
	assert.InDelta(t, 15.50, result.Price, 0.001)
	assert.Equal(t, "EUR", result.Currency)
}

func TestTryStructuredData_SkipsNonProducts(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Article","name":"Review","price":"9.99"}
		</script>
	</head></html>`)

	assert.Nil(t, tryStructuredData(doc, ""))
}

func TestTryStructuredData_TopLevelArray(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		[{"@type":"Product","name":"Boxed","offers":{"price":"7.50"}}]
		</script>
	</head></html>`)

	result := tryStructuredData(doc, "")
	require.NotNil(t, result)
	assert.Equal(t, "Boxed", result.Name)
	assert.InDelta(t, 7.50, result.Price, 0.001)
}

func TestTryStructuredData_RejectsNonPositivePrice(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Product","name":"Freebie","offers":{"price":"0"}}
		</script>
	</head></html>`)

	assert.Nil(t, tryStructuredData(doc, ""))
}

func TestTryStructuredData_EmptyOffersPriceFallsBackToEntryPrice(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Product","name":"Flat Priced","price":"12.00",
		 "offers":{"price":"","priceCurrency":"USD"}}
		</script>
	</head></html>`)

	result := tryStructuredData(doc, "")
	require.NotNil(t, result)
	assert.Equal(t, "Flat Priced", result.Name)
	assert.InDelta(t, 12.00, result.Price, 0.001)
}

func TestJSONPrice(t *testing.T) {
	price, ok := jsonPrice(float64(12.5))
	require.True(t, ok)
	assert.InDelta(t, 12.5, price, 0.001)

	price, ok = jsonPrice("1,299.00")
	require.True(t, ok)
	assert.InDelta(t, 1299.00, price, 0.001)

	_, ok = jsonPrice("not a number")
	assert.False(t, ok)

	_, ok = jsonPrice(nil)
	assert.False(t, ok)
}
