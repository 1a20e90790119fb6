package crawler

import (
	"context"
	"time"

	"sjsage522/wishlistwatcher/internal/wishlist"
)

// fallbackKeyLength bounds a title used as the page dedup key
const fallbackKeyLength = 60

// Crawler interface defines the contract for all wishlist page crawlers
type Crawler interface {
	// FetchListings retrieves the product listings currently on the page
	FetchListings(ctx context.Context) ([]wishlist.Listing, error)

	// GetName returns the crawler's name for logging and identification
	GetName() string

	// GetURL returns the wishlist page the crawler reads
	GetURL() string
}

// Selectors contains the CSS selector cascades used to read a wishlist page.
// Title and Price are tried in order; the first non-empty value wins.
type Selectors struct {
	Product   string
	Container string
	Title     []string
	Price     []string
}

// DefaultSelectors matches product cards on common storefront wishlists
func DefaultSelectors() Selectors {
	return Selectors{
		Product:   `a[href*="/product/"], a[href*="/item/"]`,
		Container: "div",
		Title: []string{
			".product-title",
			".S-product-card__title",
			".S-product-card__name",
		},
		Price: []string{
			".price",
			".S-product-price__current",
			".S-product-price__value",
		},
	}
}

// CrawlerConfig contains configuration for a crawler
type CrawlerConfig struct {
	URL         string
	CacheKey    string
	BlockTime   time.Duration
	UserAgent   string
	ChromeAddr  string
	SettleDelay time.Duration
	Selectors   Selectors
}
