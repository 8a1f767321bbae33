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

func TestFetcher_DirectFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("<html>direct</html>"))
	}))
	defer srv.Close()

	f := NewFetcher("", time.Second, time.Second)
	body, err := f.Fetch(context.Background(), srv.URL, false)
	require.NoError(t, err)

	assert.Equal(t, "<html>direct</html>", body)
	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
}

func TestFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher("", time.Second, time.Second)
	_, err := f.Fetch(context.Background(), srv.URL, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetcher_RenderedFetchGoesThroughProxy(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "https://shop.example/p/1", r.URL.Query().Get("url"))
		assert.Equal(t, "true", r.URL.Query().Get("render"))
		w.Write([]byte("<html>rendered</html>"))
	}))
	defer proxy.Close()

	f := NewFetcher("test-key", time.Second, time.Second)
	f.renderEndpoint = proxy.URL

	body, err := f.Fetch(context.Background(), "https://shop.example/p/1", true)
	require.NoError(t, err)
	assert.Equal(t, "<html>rendered</html>", body)
}

func TestFetcher_RenderedFetchFallsBackToDirect(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>direct fallback</html>"))
	}))
	defer direct.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer proxy.Close()

	f := NewFetcher("test-key", time.Second, time.Second)
	f.renderEndpoint = proxy.URL

	body, err := f.Fetch(context.Background(), direct.URL, true)
	require.NoError(t, err)
	assert.Equal(t, "<html>direct fallback</html>", body)
}

func TestFetcher_NoAPIKeyDegradesToDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>no key</html>"))
	}))
	defer srv.Close()

	f := NewFetcher("", time.Second, time.Second)
	body, err := f.Fetch(context.Background(), srv.URL, true)
	require.NoError(t, err)
	assert.Equal(t, "<html>no key</html>", body)
}

func TestFetcher_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := NewFetcher("", time.Second, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL, false)
	assert.Error(t, err)
}
