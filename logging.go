package headerkit

import (
	"context"
	"log/slog"
	"sync"
)

// LogBackend provides a pluggable logging interface compatible with slog.
// Users can implement this interface to integrate their preferred logging solution.
// The interface matches slog.Logger method signatures for easy wrapping.
//
// Users control the log level cutoff by configuring their logger implementation.
// For example, when wrapping slog.Logger, set the level in the handler:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
//	logger := slog.New(handler)
//
// If no LogBackend is provided, a no-op logger is used by default.
type LogBackend interface {
	// Debug logs a message at Debug level with optional key-value pairs
	Debug(msg string, args ...any)

	// Info logs a message at Info level with optional key-value pairs
	Info(msg string, args ...any)

	// Warn logs a message at Warn level with optional key-value pairs
	Warn(msg string, args ...any)

	// Error logs a message at Error level with optional key-value pairs
	Error(msg string, args ...any)
}

// noopLogger is a no-op implementation of LogBackend used when no logger is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(_ string, _ ...any)                                {}
func (n *noopLogger) Info(_ string, _ ...any)                                 {}
func (n *noopLogger) Warn(_ string, _ ...any)                                 {}
func (n *noopLogger) Error(_ string, _ ...any)                                {}
func (n *noopLogger) Log(_ context.Context, _ slog.Level, _ string, _ ...any) {}

// LogEntry is a single message captured by TestLogger.
type LogEntry struct {
	Level   slog.Level
	Message string
	Args    []any
}

// TestLogger is a LogBackend that records every message in memory so tests
// can assert on what was logged. Unlike the data structures in this package,
// it is safe for concurrent use.
type TestLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewTestLogger returns an empty TestLogger.
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) append(level slog.Level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
}

func (l *TestLogger) Debug(msg string, args ...any) { l.append(slog.LevelDebug, msg, args) }
func (l *TestLogger) Info(msg string, args ...any)  { l.append(slog.LevelInfo, msg, args) }
func (l *TestLogger) Warn(msg string, args ...any)  { l.append(slog.LevelWarn, msg, args) }
func (l *TestLogger) Error(msg string, args ...any) { l.append(slog.LevelError, msg, args) }

// Log records a message at an arbitrary level.
func (l *TestLogger) Log(_ context.Context, level slog.Level, msg string, args ...any) {
	l.append(level, msg, args)
}

// Count returns the number of unconsumed entries.
func (l *TestLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Next consumes and returns the oldest entry, or nil if none remain.
func (l *TestLogger) Next() *LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	entry := l.entries[0]
	l.entries = l.entries[1:]
	return &entry
}

// HasLevel reports whether any unconsumed entry was logged at level.
func (l *TestLogger) HasLevel(level slog.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.Level == level {
			return true
		}
	}
	return false
}

// FindByMessage returns all unconsumed entries whose message equals msg.
func (l *TestLogger) FindByMessage(msg string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var found []LogEntry
	for _, entry := range l.entries {
		if entry.Message == msg {
			found = append(found, entry)
		}
	}
	return found
}

// Entries returns a copy of all unconsumed entries without consuming them.
func (l *TestLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Clear drops all recorded entries.
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
