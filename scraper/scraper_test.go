package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScraper() *ProductScraper {
	return NewProductScraper(NewFetcher("", time.Second, time.Second))
}

func TestScrapeProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<h1>Cool Gadget</h1>
			<div class="product-price">$49.00</div>
		</body></html>`))
	}))
	defer srv.Close()

	result, err := newTestScraper().ScrapeProduct(context.Background(), srv.URL, false, "Cool Gadget")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Cool Gadget", result.Name)
	assert.InDelta(t, 49.00, result.Price, 0.001)
	assert.Equal(t, "USD", result.Currency)
}

func TestScrapeProduct_InvalidURL(t *testing.T) {
	s := newTestScraper()

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		_, err := s.ScrapeProduct(context.Background(), bad, false, "")
		assert.Error(t, err, "url %q", bad)
	}
}

func TestScrapeProduct_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := newTestScraper().ScrapeProduct(context.Background(), srv.URL, false, "")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestScrapeProduct_NoPriceIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Sold Out Gadget</h1></body></html>`))
	}))
	defer srv.Close()

	result, err := newTestScraper().ScrapeProduct(context.Background(), srv.URL, false, "")
	require.NoError(t, err)
	assert.Nil(t, result)
}
