package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a slog level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the record encoding.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes a logger. The zero value logs info and above as text
// to stderr.
type Config struct {
	Level  Level
	Format Format
	// Output defaults to os.Stderr.
	Output    io.Writer
	AddSource bool
}

// New creates a logger from cfg.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return slog.New(newHandler(cfg.Output, cfg.Format, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}))
}

func newHandler(w io.Writer, format Format, opts *slog.HandlerOptions) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewWithLevel creates a text logger on stderr.
func NewWithLevel(level Level) *slog.Logger {
	return New(Config{Level: level})
}

// FromFlags creates a logger on w from the --log-level and --log-format
// flag values. Unknown values fall back to info and text.
func FromFlags(level, format string, w io.Writer) *slog.Logger {
	return New(Config{
		Level:  ParseLevel(level),
		Format: ParseFormat(format),
		Output: w,
	})
}

// Nop returns a logger that is disabled at every level. Collections use it
// unless a logger is given.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses "debug", "info", "warn"/"warning" or "error", ignoring
// case. Anything else is LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat parses "text" or "json", ignoring case. Anything else is
// FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}
