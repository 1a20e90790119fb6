package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sjsage522/wishlistwatcher/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *http.Client {
	client, err := NewHTTPClient(5*time.Second, "")
	require.NoError(t, err)
	return client
}

func TestFetchWithRandomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check that headers are set
		assert.Equal(t, "WishlistBot/1.0", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))
		assert.NotEmpty(t, r.Header.Get("Referer"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	reader, err := FetchWithRandomHeaders(context.Background(), newTestClient(t), server.URL, "WishlistBot/1.0")
	require.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestFetchWithRandomHeadersDefaultUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, userAgents, r.Header.Get("User-Agent"))
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	_, err := FetchWithRandomHeaders(context.Background(), newTestClient(t), server.URL, "")
	assert.NoError(t, err)
}

func TestFetchWithRandomHeadersNonUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.WriteHeader(http.StatusOK)
		// "Café £5" in ISO-8859-1
		w.Write([]byte("<html><body>Caf\xe9 \xa35</body></html>"))
	}))
	defer server.Close()

	reader, err := FetchWithRandomHeaders(context.Background(), newTestClient(t), server.URL, "")
	require.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Café £5")
}

func TestFetchWithRandomHeadersError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchWithRandomHeaders(context.Background(), newTestClient(t), server.URL, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
	assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))

	// Test with rate limiting
	serverRateLimited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer serverRateLimited.Close()

	_, err = FetchWithRandomHeaders(context.Background(), newTestClient(t), serverRateLimited.URL, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited for 1m0s")
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimit))
}

func TestFetchWithRandomHeadersCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchWithRandomHeaders(ctx, newTestClient(t), server.URL, "")
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPClientProxy(t *testing.T) {
	client, err := NewHTTPClient(time.Second, "http://proxy.example:3128")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "http://shop.example/", nil)
	proxy, err := client.Transport.(*http.Transport).Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.example:3128", proxy.Host)

	_, err = NewHTTPClient(time.Second, "://bad")
	assert.Error(t, err)
}
