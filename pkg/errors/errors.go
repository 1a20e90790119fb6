package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents a failure to load a wishlist page
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypePersistence represents snapshot store failures
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeNotification represents notification sink failures
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// WatchError is an error raised around the wishlist watch loop.
// Source is the wishlist URL, store backend or notifier name involved.
type WatchError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
	// Wait is how long a rate-limited source asked us to back off
	Wait time.Duration
}

// Error implements the error interface
func (e *WatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *WatchError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if retrying in a later round may succeed
func (e *WatchError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch, ErrorTypePersistence, ErrorTypeNotification:
		return true
	default:
		return false
	}
}

// IsType reports whether err wraps a WatchError of the given type
func IsType(err error, errType ErrorType) bool {
	var we *WatchError
	if stderrors.As(err, &we) {
		return we.Type == errType
	}
	return false
}

// IsRetryable reports whether err wraps a WatchError that a later round may clear
func IsRetryable(err error) bool {
	var we *WatchError
	return stderrors.As(err, &we) && we.IsRetryable()
}

// RateLimitWait returns the back-off carried by a wrapped rate limit error
func RateLimitWait(err error) (time.Duration, bool) {
	var we *WatchError
	if stderrors.As(err, &we) && we.Type == ErrorTypeRateLimit {
		return we.Wait, true
	}
	return 0, false
}

// New creates a new WatchError
func New(errType ErrorType, source, message string, err error) *WatchError {
	return &WatchError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *WatchError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *WatchError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *WatchError {
	message := fmt.Sprintf("rate limited for %v", duration)
	err := New(ErrorTypeRateLimit, source, message, nil)
	err.Wait = duration
	return err
}

// NewPersistence creates a new persistence error
func NewPersistence(backend, message string, err error) *WatchError {
	return New(ErrorTypePersistence, backend, message, err)
}

// NewNotification creates a new notification error
func NewNotification(notifier, message string, err error) *WatchError {
	return New(ErrorTypeNotification, notifier, message, err)
}


// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *WatchError {
	return New(ErrorTypeConfiguration, "", message, err)
}
