package crawler

import (
	"io"
	"strings"
	"testing"
	"time"

	"sjsage522/wishlistwatcher/pkg/errors"
	"sjsage522/wishlistwatcher/services/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBaseCrawlerGuard tests the rate-limit block around a fetch
func TestBaseCrawlerGuard(t *testing.T) {
	mockCache := cache.NewMemoryCache()
	crawler := BaseCrawler{
		URL:       "https://shop.example/wishlist",
		CacheKey:  "test_rate_limited",
		CacheSvc:  mockCache,
		BlockTime: 5 * time.Minute,
	}

	calls := 0
	ok := func() (io.Reader, error) {
		calls++
		return strings.NewReader("<html></html>"), nil
	}
	limited := func() (io.Reader, error) {
		calls++
		return nil, errors.NewRateLimit(crawler.URL, 30*time.Second)
	}

	_, err := crawler.guard(ok)
	require.NoError(t, err)

	// A short Retry-After still blocks for the configured time
	_, err = crawler.guard(limited)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimit))
	value, err := mockCache.Get("test_rate_limited")
	require.NoError(t, err)
	assert.Equal(t, "300", string(value))

	_, err = crawler.guard(ok)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimit))
	assert.Equal(t, 2, calls, "blocked fetches must not run")

	require.NoError(t, mockCache.Delete("test_rate_limited"))
	_, err = crawler.guard(ok)
	assert.NoError(t, err)
}

// TestBaseCrawlerGuardWithoutCache tests that fetches pass through without a cache
func TestBaseCrawlerGuardWithoutCache(t *testing.T) {
	crawler := BaseCrawler{URL: "https://shop.example/wishlist"}

	for i := 0; i < 2; i++ {
		_, err := crawler.guard(func() (io.Reader, error) {
			return nil, errors.NewRateLimit(crawler.URL, time.Minute)
		})
		assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimit))
	}
	assert.False(t, crawler.isBlocked())
}

// TestCreateDocument tests HTML parsing
func TestCreateDocument(t *testing.T) {
	crawler := BaseCrawler{URL: "https://shop.example/wishlist"}

	doc, err := crawler.createDocument(strings.NewReader(`<div class="price">$10</div>`))
	require.NoError(t, err)
	assert.Equal(t, "$10", doc.Find("div.price").Text())
	assert.Equal(t, "https://shop.example/wishlist", crawler.GetName())
}
