package diag

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Severity labels a diagnostic entry.
type Severity string

const (
	Warning Severity = "WARNING"
	Error   Severity = "ERROR"
)

// Logger is an append-only diagnostic stream. It is the only channel the
// pipeline uses to report per-file and per-metric failures; nothing it
// records ever aborts a batch.
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	entries int64
}

// New creates a Logger writing timestamped entries to w.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

// Discard returns a Logger that drops everything. Useful for tests.
func Discard() *Logger {
	return New(io.Discard)
}

// Errorf records an error-severity entry.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(Error, format, args...)
}

// Warnf records a warning-severity entry.
func (l *Logger) Warnf(format string, args ...any) {
	l.write(Warning, format, args...)
}

// Entries returns the number of entries recorded so far.
func (l *Logger) Entries() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

func (l *Logger) write(sev Severity, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries++
	l.out.Printf("%s: %s", sev, fmt.Sprintf(format, args...))
}
