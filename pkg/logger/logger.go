// Package logger provides structured logging for the coordinator and
// clients. Shard values, private scalars and envelope keys must never be
// logged; RedactShard exists for the few places that need to reference one.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	// Level is the minimum level: debug, info, warn or error
	Level string

	// Output defaults to os.Stdout
	Output io.Writer

	// Pretty enables human-readable console output for development
	Pretty bool
}

// Logger wraps a zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger with the given configuration
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{Level: "info"}
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(output).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	return &Logger{zl: zl}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug-level event
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info-level event
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warn-level event
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error-level event
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal starts a fatal-level event; Msg will exit the process
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With returns a child logger carrying an additional string field
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// RedactShard renders a shard value reference safe for logs: only a short
// prefix survives, enough to correlate, never enough to reconstruct
func RedactShard(value string) string {
	if len(value) <= 8 {
		return "<redacted>"
	}
	return value[:4] + "...<redacted>"
}

var global = New(nil)

// SetGlobal replaces the process-wide default logger
func SetGlobal(l *Logger) {
	if l != nil {
		global = l
	}
}

// Global returns the process-wide default logger
func Global() *Logger {
	return global
}
