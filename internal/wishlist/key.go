package wishlist

// Key returns the identity of a listing: its link when present, else its title.
// An empty result means the listing cannot be tracked.
func Key(l Listing) string {
	if l.Link != "" {
		return l.Link
	}
	return l.Title
}
