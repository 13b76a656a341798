// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmriego/gremlin/internal/ctxlog"
)

// LogRecorder is a slog.Handler that captures log records so tests can
// assert on warnings and errors emitted through ctxlog.
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one captured record.
type LogEntry struct {
	Level   slog.Level
	Message string
}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Context returns a context carrying a logger that records into r.
func (r *LogRecorder) Context() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(r))
}

// Messages returns the captured messages at the given level.
func (r *LogRecorder) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func (r *LogRecorder) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (r *LogRecorder) Handle(ctx context.Context, record slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, LogEntry{Level: record.Level, Message: record.Message})
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return r
}

func (r *LogRecorder) WithGroup(name string) slog.Handler {
	return r
}
