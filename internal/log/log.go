package log

import (
	"os"

	charm "github.com/charmbracelet/log"
)

var logger = charm.NewWithOptions(os.Stderr, charm.Options{
	ReportTimestamp: true,
})

// Configure sets the global log level and output format.
// Level is one of trace, debug, info, warn, error; format is console or json.
// Unknown values fall back to info/console.
func Configure(level, format string) {
	if lvl, err := charm.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(charm.InfoLevel)
	}

	if format == "json" {
		logger.SetFormatter(charm.JSONFormatter)
	} else {
		logger.SetFormatter(charm.TextFormatter)
	}
}

// Debug logs a debug message with key/value pairs
func Debug(msg string, args ...interface{}) {
	logger.Debug(msg, args...)
}

// Info logs an info message with key/value pairs
func Info(msg string, args ...interface{}) {
	logger.Info(msg, args...)
}

// Warn logs a warning message with key/value pairs
func Warn(msg string, args ...interface{}) {
	logger.Warn(msg, args...)
}

// Error logs an error message with key/value pairs
func Error(msg string, args ...interface{}) {
	logger.Error(msg, args...)
}
