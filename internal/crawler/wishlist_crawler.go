package crawler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// WishlistCrawler reads product cards from a wishlist page using selector cascades
type WishlistCrawler struct {
	BaseCrawler
	Selectors   Selectors
	ChromeAddr  string
	SettleDelay time.Duration
	fetchFunc   func(context.Context) (io.Reader, error)
}

// NewWishlistCrawler creates a crawler that renders through ChromeAddr when set
func NewWishlistCrawler(config CrawlerConfig, cacheSvc cache.CacheService, client *http.Client) *WishlistCrawler {
	c := &WishlistCrawler{
		BaseCrawler: BaseCrawler{
			URL:       config.URL,
			CacheKey:  config.CacheKey,
			CacheSvc:  cacheSvc,
			BlockTime: config.BlockTime,
			Client:    client,
			UserAgent: config.UserAgent,
		},
		Selectors:   config.Selectors,
		ChromeAddr:  config.ChromeAddr,
		SettleDelay: config.SettleDelay,
	}

	if c.ChromeAddr != "" {
		logger.ForCrawler(c.URL).Debug().Str("renderer", c.ChromeAddr).Msg("Using headless renderer")
		c.fetchFunc = c.fetchWithChromeDB
	} else {
		c.fetchFunc = c.fetchWithCache
	}

	return c
}

// FetchListings fetches the page and extracts its listings
func (c *WishlistCrawler) FetchListings(ctx context.Context) ([]wishlist.Listing, error) {
	body, err := c.fetchFunc(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := c.createDocument(body)
	if err != nil {
		return nil, err
	}

	listings := ExtractListings(doc, c.URL, c.Selectors)
	log := logger.ForCrawler(c.URL)
	log.Debug().Int("listings", len(listings)).Msg("Extracted listings")
	if logger.IsDebugEnabled() {
		for _, l := range listings {
			log.Debug().Str("title", l.Title).Str("price", l.PriceRaw).Str("link", l.Link).Msg("Listing")
		}
	}
	return listings, nil
}

// ExtractListings reads every product anchor of doc in document order.
// Listings are deduplicated by link, or by truncated title when the link is
// missing; the first occurrence wins. Anchors without link and title are dropped.
func ExtractListings(doc *goquery.Document, pageURL string, sel Selectors) []wishlist.Listing {
	var listings []wishlist.Listing
	seen := make(map[string]struct{})

	doc.Find(sel.Product).Each(func(_ int, a *goquery.Selection) {
		listing := extractListing(a, pageURL, sel)

		key := listing.Link
		if key == "" {
			key = helpers.TruncateRunes(listing.Title, fallbackKeyLength)
		}
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		listings = append(listings, listing)
	})

	return listings
}

func extractListing(a *goquery.Selection, pageURL string, sel Selectors) wishlist.Listing {
	container := a
	if sel.Container != "" {
		if closest := a.Closest(sel.Container); closest.Length() > 0 {
			container = closest
		}
	}

	href, _ := a.Attr("href")

	return wishlist.Listing{
		Title:    strings.TrimSpace(extractTitle(a, container, sel.Title)),
		PriceRaw: strings.TrimSpace(firstText(container, sel.Price)),
		Link:     helpers.ResolveURL(pageURL, href),
	}
}

// extractTitle tries the image alt text, the title cascade, the anchor
// title attribute and finally the anchor text
func extractTitle(a, container *goquery.Selection, cascade []string) string {
	if alt, ok := a.Find("img").First().Attr("alt"); ok && strings.TrimSpace(alt) != "" {
		return alt
	}
	if title := firstText(container, cascade); title != "" {
		return title
	}
	if attr, ok := a.Attr("title"); ok && strings.TrimSpace(attr) != "" {
		return attr
	}
	return a.Text()
}

func firstText(s *goquery.Selection, cascade []string) string {
	for _, selector := range cascade {
		if text := strings.TrimSpace(s.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
