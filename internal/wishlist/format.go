package wishlist

import (
	"fmt"
	"html"
)

// Format renders an event as a Telegram HTML message
func Format(e Event) string {
	title := e.Listing.Title
	if title == "" {
		title = "Unknown"
	}
	title = html.EscapeString(title)
	price := html.EscapeString(e.Listing.PriceRaw)
	link := html.EscapeString(e.Listing.Link)

	oldPrice := "N/A"
	if e.Previous != nil && e.Previous.PriceRaw != "" {
		oldPrice = html.EscapeString(e.Previous.PriceRaw)
	}

	switch e.Kind {
	case EventNew:
		return fmt.Sprintf("🆕 New item in wishlist:\n<b>%s</b>\nPrice: %s\n%s", title, price, link)
	case EventPriceDrop:
		return fmt.Sprintf("🔻 Price drop:\n<b>%s</b>\nOld: %s → Now: %s\n%s", title, oldPrice, price, link)
	case EventPriceUp:
		return fmt.Sprintf("🔺 Price increased:\n<b>%s</b>\nOld: %s → Now: %s\n%s", title, oldPrice, price, link)
	default:
		return fmt.Sprintf("ℹ️ Update for: <b>%s</b>\nPrice: %s\n%s", title, price, link)
	}
}
