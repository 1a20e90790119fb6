package crawler

import (
	"net/http"
	"net/url"

	"sjsage522/wishlistwatcher/config"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/services/cache"
)

// CreateCrawlers creates one crawler per configured wishlist URL
func CreateCrawlers(cfg *config.Config, cacheSvc cache.CacheService, client *http.Client) []Crawler {
	var crawlers []Crawler
	for _, pageURL := range cfg.WishlistURLs {
		crawlers = append(crawlers, NewWishlistCrawler(CrawlerConfig{
			URL:         pageURL,
			CacheKey:    blockKey(pageURL),
			BlockTime:   cfg.RateLimitBlockFor,
			UserAgent:   cfg.UserAgent,
			ChromeAddr:  cfg.ChromeAddr,
			SettleDelay: cfg.SettleDelay,
			Selectors:   DefaultSelectors(),
		}, cacheSvc, client))
	}

	for i, c := range crawlers {
		logger.Debug("Crawler %d: %s", i, c.GetURL())
	}

	return crawlers
}

// blockKey is shared by every wishlist on the same host, since shops rate limit per client
func blockKey(pageURL string) string {
	host := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return "rate_limited:" + host
}
