package wishlist

// Listing represents one product scraped from a wishlist page
type Listing struct {
	Title    string `json:"title"`
	PriceRaw string `json:"price"`
	Link     string `json:"link"`
}

// Entry is the last-known state of a tracked item
type Entry struct {
	Title    string `json:"title"`
	PriceRaw string `json:"price"`
}

// Snapshot maps item keys to their last-known entries across all sources
type Snapshot map[string]Entry

// Clone returns a copy of the snapshot that can be modified independently
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a new snapshot holding s with updates applied on top.
// Keys absent from updates are carried forward unchanged.
func (s Snapshot) Merge(updates map[string]Entry) Snapshot {
	out := s.Clone()
	for k, v := range updates {
		out[k] = v
	}
	return out
}

// EntryFor builds the snapshot entry recorded for a listing
func EntryFor(l Listing) Entry {
	return Entry{Title: l.Title, PriceRaw: l.PriceRaw}
}
