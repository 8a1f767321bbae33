package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

// ProductScraper couples the fetcher with the extraction pipeline
type ProductScraper struct {
	fetcher *Fetcher
}

// NewProductScraper creates a new product scraper instance
func NewProductScraper(fetcher *Fetcher) *ProductScraper {
	return &ProductScraper{fetcher: fetcher}
}

// ScrapeProduct fetches a product page and extracts its name, price and
// currency.
//
// renderJS selects the slow rendered fetch mode: the scheduled checker
// uses it since it runs standalone, while the synchronous subscribe path
// passes false to stay inside its request deadline.
//
// A page that yields no price returns (nil, nil): absence is an expected
// outcome and the caller decides whether to retry on a later run.
func (s *ProductScraper) ScrapeProduct(ctx context.Context, rawURL string, renderJS bool, productNameHint string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", rawURL)
	}

	htmlText, err := s.fetcher.Fetch(ctx, rawURL, renderJS)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %v", rawURL, err)
	}

	result := ExtractProduct(rawURL, htmlText, productNameHint)
	if result == nil {
		log.Warn().Str("url", rawURL).Msg("No price found")
		return nil, nil
	}
	return result, nil
}
