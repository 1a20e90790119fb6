package notifier

import (
	"context"
	stderrors "errors"
	"time"

	"sjsage522/wishlistwatcher/internal/wishlist"
)

// Notification is one classified event ready to be delivered
type Notification struct {
	Source     string
	Event      wishlist.Event
	Text       string
	DetectedAt time.Time
}

// NewNotification formats the event found on source
func NewNotification(source string, event wishlist.Event) Notification {
	return Notification{
		Source:     source,
		Event:      event,
		Text:       wishlist.Format(event),
		DetectedAt: time.Now().UTC(),
	}
}

// Notifier represents a sink for wishlist notifications
type Notifier interface {
	// Notify delivers a single notification
	Notify(ctx context.Context, n Notification) error

	// Name identifies the sink in logs
	Name() string

	// Close releases the sink
	Close() error
}

// Multi delivers every notification to all of its sinks
type Multi []Notifier

// Notify tries every sink and joins their failures
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Name returns "multi"
func (m Multi) Name() string {
	return "multi"
}

// Close closes every sink
func (m Multi) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
