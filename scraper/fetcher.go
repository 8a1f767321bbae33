package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Default rendering proxy endpoint; overridable for tests
const defaultRenderEndpoint = "https://api.scraperapi.com/"

// Request headers that mimic a real browser
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Fetcher retrieves product page HTML in two modes: a fast direct
// request, and a slow rendered fetch routed through an external
// JS-rendering proxy. The rendered mode requires an API key and falls
// back to the direct mode on any failure; without a key it degrades to
// the direct mode outright.
type Fetcher struct {
	apiKey         string
	renderEndpoint string
	client         *http.Client
	renderClient   *http.Client
}

// NewFetcher creates a fetcher. fetchTimeout bounds direct requests
// (suitable for the synchronous subscribe path); renderTimeout bounds
// rendered fetches, which can take up to a minute while the proxy
// executes page JavaScript.
func NewFetcher(apiKey string, fetchTimeout, renderTimeout time.Duration) *Fetcher {
	return &Fetcher{
		apiKey:         apiKey,
		renderEndpoint: defaultRenderEndpoint,
		client:         &http.Client{Timeout: fetchTimeout},
		renderClient:   &http.Client{Timeout: renderTimeout},
	}
}

// Fetch returns the page HTML for rawURL. renderJS selects the rendered
// mode when available.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, renderJS bool) (string, error) {
	if renderJS && f.apiKey != "" {
		apiURL := fmt.Sprintf("%s?api_key=%s&url=%s&render=true",
			f.renderEndpoint, f.apiKey, url.QueryEscape(rawURL))

		html, err := f.get(ctx, f.renderClient, apiURL, false)
		if err == nil {
			return html, nil
		}
		log.Warn().Err(err).Str("url", rawURL).Msg("Rendered fetch failed, falling back to direct request")
	}

	return f.get(ctx, f.client, rawURL, true)
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, requestURL string, withHeaders bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}
	if withHeaders {
		for key, value := range browserHeaders {
			req.Header.Set(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %v", err)
	}
	return string(body), nil
}
