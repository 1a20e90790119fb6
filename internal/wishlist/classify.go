package wishlist

// EventKind classifies the outcome of comparing a listing with its previous entry
type EventKind int

const (
	// EventNew marks a key that was not in the previous snapshot
	EventNew EventKind = iota
	// EventPriceDrop marks a strictly lower normalized price
	EventPriceDrop
	// EventPriceUp marks a strictly higher normalized price
	EventPriceUp
	// EventTitleUpdated marks an equal price with a different title
	EventTitleUpdated
	// EventUnchanged marks an equal price and title
	EventUnchanged
)

var eventKindNames = map[EventKind]string{
	EventNew:          "new",
	EventPriceDrop:    "price_drop",
	EventPriceUp:      "price_up",
	EventTitleUpdated: "title_updated",
	EventUnchanged:    "unchanged",
}

// String returns the wire name of the kind
func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a classified listing. Previous is nil for EventNew.
type Event struct {
	Kind     EventKind `json:"kind"`
	Key      string    `json:"key"`
	Listing  Listing   `json:"listing"`
	Previous *Entry    `json:"previous,omitempty"`
}

// Changed reports whether the event stages a snapshot update
func (e Event) Changed() bool {
	return e.Kind != EventUnchanged
}

// Classify compares the current listings of one source with the previous snapshot.
//
// Listings are processed in order. Listings with an empty key are skipped and
// only the first listing for a key is evaluated. The returned updates hold the
// entries to merge into the snapshot; unchanged items are not included.
// Keys in previous that are missing from current produce no event.
func Classify(current []Listing, previous Snapshot) ([]Event, map[string]Entry) {
	events := make([]Event, 0, len(current))
	updates := make(map[string]Entry)
	seen := make(map[string]struct{}, len(current))

	for _, listing := range current {
		key := Key(listing)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		prev, ok := previous[key]
		if !ok {
			events = append(events, Event{Kind: EventNew, Key: key, Listing: listing})
			updates[key] = EntryFor(listing)
			continue
		}

		event := Event{Kind: compare(listing, prev), Key: key, Listing: listing, Previous: &prev}
		events = append(events, event)
		if event.Changed() {
			updates[key] = EntryFor(listing)
		}
	}

	return events, updates
}

// compare uses exact equality of the normalized prices
func compare(listing Listing, prev Entry) EventKind {
	current := NormalizePrice(listing.PriceRaw)
	last := NormalizePrice(prev.PriceRaw)

	switch {
	case current < last:
		return EventPriceDrop
	case current > last:
		return EventPriceUp
	case listing.Title != prev.Title:
		return EventTitleUpdated
	default:
		return EventUnchanged
	}
}
