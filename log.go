package aspen

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide structured logger. Missing-reference and
// not-found conditions are logged here and the offending frame effect is
// skipped; nothing in the engine retries.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "aspen",
})

// SetLogger replaces the package logger. Pass a logger writing to io.Discard
// to silence the engine.
func SetLogger(l *log.Logger) {
	logger = l
}

// Logger returns the package logger, e.g. to adjust its level.
func Logger() *log.Logger {
	return logger
}
