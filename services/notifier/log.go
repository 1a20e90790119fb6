package notifier

import (
	"context"

	"sjsage522/wishlistwatcher/logger"
)

// LogNotifier writes every notification to the structured log
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier backed by the default logger
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.ForNotifier("log")}
}

// Name returns "log"
func (l *LogNotifier) Name() string {
	return "log"
}

// Notify logs the event kind, key and price change
func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	event := l.log.Info().
		Str("kind", n.Event.Kind.String()).
		Str("source", n.Source).
		Str("key", n.Event.Key).
		Str("title", n.Event.Listing.Title).
		Str("price", n.Event.Listing.PriceRaw)
	if n.Event.Previous != nil {
		event = event.Str("old_price", n.Event.Previous.PriceRaw)
	}
	event.Msg("Wishlist change detected")
	return nil
}

// Close is a no-op
func (l *LogNotifier) Close() error {
	return nil
}
