package helpers

import (
	"fmt"

	"sjsage522/wishlistwatcher/logger"
)

// LoggerInterface defines the interface for logger implementations
type LoggerInterface interface {
	LogError(source string, err error)
	LogWarn(source string, err error)
	LogInfo(format string, args ...interface{})
}

// Logger forwards to the structured logger under a component name
type Logger struct {
	component string
}

// NewLogger creates a new logger instance for a component
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// LogError logs an error tagged with the source it came from
func (l *Logger) LogError(source string, err error) {
	logger.With(logger.Fields{
		"component": l.component,
		"source":    source,
	}).Error().Err(err).Msg("operation failed")
}

// LogWarn logs a failure that a later round is expected to clear
func (l *Logger) LogWarn(source string, err error) {
	logger.With(logger.Fields{
		"component": l.component,
		"source":    source,
	}).Warn().Err(err).Msg("operation failed, retrying next round")
}

// LogInfo logs an informational message
func (l *Logger) LogInfo(format string, args ...interface{}) {
	logger.LogInfo(l.component, "%s", fmt.Sprintf(format, args...))
}
