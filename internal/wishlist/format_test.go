package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	listing := Listing{Title: "Shoe", PriceRaw: "19.99", Link: "http://x/1"}
	previous := &Entry{Title: "Shoe", PriceRaw: "25.00"}

	testCases := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name:     "new",
			event:    Event{Kind: EventNew, Listing: listing},
			expected: "🆕 New item in wishlist:\n<b>Shoe</b>\nPrice: 19.99\nhttp://x/1",
		},
		{
			name:     "price drop",
			event:    Event{Kind: EventPriceDrop, Listing: listing, Previous: previous},
			expected: "🔻 Price drop:\n<b>Shoe</b>\nOld: 25.00 → Now: 19.99\nhttp://x/1",
		},
		{
			name:     "price up",
			event:    Event{Kind: EventPriceUp, Listing: listing, Previous: previous},
			expected: "🔺 Price increased:\n<b>Shoe</b>\nOld: 25.00 → Now: 19.99\nhttp://x/1",
		},
		{
			name:     "title updated",
			event:    Event{Kind: EventTitleUpdated, Listing: listing, Previous: previous},
			expected: "ℹ️ Update for: <b>Shoe</b>\nPrice: 19.99\nhttp://x/1",
		},
		{
			name:     "unchanged",
			event:    Event{Kind: EventUnchanged, Listing: listing, Previous: previous},
			expected: "ℹ️ Update for: <b>Shoe</b>\nPrice: 19.99\nhttp://x/1",
		},
		{
			name:     "missing previous",
			event:    Event{Kind: EventPriceDrop, Listing: listing},
			expected: "🔻 Price drop:\n<b>Shoe</b>\nOld: N/A → Now: 19.99\nhttp://x/1",
		},
		{
			name:     "empty title",
			event:    Event{Kind: EventNew, Listing: Listing{PriceRaw: "5", Link: "http://x/2"}},
			expected: "🆕 New item in wishlist:\n<b>Unknown</b>\nPrice: 5\nhttp://x/2",
		},
		{
			name:     "escapes markup",
			event:    Event{Kind: EventNew, Listing: Listing{Title: "Tee <L> & co", PriceRaw: "5", Link: "http://x/?a=1&b=2"}},
			expected: "🆕 New item in wishlist:\n<b>Tee &lt;L&gt; &amp; co</b>\nPrice: 5\nhttp://x/?a=1&amp;b=2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.event))
		})
	}
}
