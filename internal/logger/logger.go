package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton console logger configured with the provided level.
// The first call to Get or Init wins; later calls return that instance.
func Get(level string) *Logger {
	return Init(level, FormatConsole)
}

// Init is Get with an explicit output format.
func Init(level, format string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, format)
	})
	return globalLogger
}
