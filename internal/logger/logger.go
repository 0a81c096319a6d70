// Package logger provides leveled logging for nlquery.
// Warnings and errors are always written; debug and info messages are
// written only in verbose mode, enabled with the --verbose flag.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	zl                = build(os.Stderr, FormatConsole, false)
)

func build(w io.Writer, f string, v bool) zerolog.Logger {
	if f != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	level := zerolog.WarnLevel
	if v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	zl = build(output, format, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	zl = build(output, format, verbose)
}

// SetFormat selects console or JSON output. Unknown values mean console.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	format = f
	zl = build(output, format, verbose)
}

// Logger returns the underlying structured logger for callers that attach
// fields, such as the HTTP request logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return zl
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	l := Logger()
	l.Error().Msgf(format, args...)
}
