// Package logging provides structured logging configuration for clientmock.
//
// This package wraps log/slog so that the collection, the test harness and
// the CLI log the same way. It supports configurable log levels and output
// formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	c := clientmock.NewCollection(clientmock.WithLogger(logger))
//
// In tests, NewTB routes records to t.Log so they only show up for failing
// tests or with -v.
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// Components accept a *slog.Logger through an option. If no logger is
// provided, they use logging.Nop().
package logging
