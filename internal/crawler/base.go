package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/pkg/errors"
	"sjsage522/wishlistwatcher/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// BaseCrawler provides the fetch plumbing shared by crawlers
type BaseCrawler struct {
	URL       string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
	Client    *http.Client
	UserAgent string
}

// isBlocked reports whether a previous rate limit still blocks the source
func (c *BaseCrawler) isBlocked() bool {
	if c.CacheSvc == nil || c.CacheKey == "" {
		return false
	}
	_, err := c.CacheSvc.Get(c.CacheKey)
	return err == nil
}

// block stops requests to the source for BlockTime, or longer if the server asked
func (c *BaseCrawler) block(retryAfter time.Duration) {
	if c.CacheSvc == nil || c.CacheKey == "" {
		return
	}
	duration := c.BlockTime
	if retryAfter > duration {
		duration = retryAfter
	}
	c.CacheSvc.Set(c.CacheKey, []byte(fmt.Sprintf("%d", int(duration.Seconds()))), duration)
}

// guard wraps a fetch with the rate-limit block
func (c *BaseCrawler) guard(fetch func() (io.Reader, error)) (io.Reader, error) {
	if c.isBlocked() {
		return nil, errors.NewRateLimit(c.URL, c.BlockTime)
	}

	body, err := fetch()
	if wait, limited := errors.RateLimitWait(err); limited {
		c.block(wait)
	}
	return body, err
}

// fetchWithCache fetches the page over plain HTTP with rate limiting
func (c *BaseCrawler) fetchWithCache(ctx context.Context) (io.Reader, error) {
	return c.guard(func() (io.Reader, error) {
		return helpers.FetchWithRandomHeaders(ctx, c.Client, c.URL, c.UserAgent)
	})
}

// createDocument creates a goquery document from a reader
func (c *BaseCrawler) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, errors.NewParsing(c.URL, "failed to parse HTML", err)
	}
	return doc, nil
}

// GetName returns the crawler's name for logging
func (c *BaseCrawler) GetName() string {
	return c.URL
}

// GetURL returns the wishlist page URL
func (c *BaseCrawler) GetURL() string {
	return c.URL
}
