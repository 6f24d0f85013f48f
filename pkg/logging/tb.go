package logging

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// TBWriter is an io.Writer that forwards each written line to t.Log.
type TBWriter struct {
	t   testing.TB
	mu  sync.Mutex
	buf []byte
}

// NewTBWriter returns a writer logging to t.
func NewTBWriter(t testing.TB) *TBWriter {
	return &TBWriter{t: t}
}

// Write implements io.Writer. Incomplete lines are held until their newline
// arrives.
func (w *TBWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.t.Helper()
		w.t.Log(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// NewTB returns a text logger writing to t at the given level.
func NewTB(t testing.TB, level Level) *slog.Logger {
	return New(Config{
		Level:  level,
		Format: FormatText,
		Output: NewTBWriter(t),
	})
}
