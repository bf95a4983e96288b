// Package logwriter has the structured, dual-mode run logger.
package logwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/brightops/prove/schema"
	"github.com/fatih/color"
)

// Level glyphs for human-readable output.
const (
	headerGlyph  = "🔎"
	infoGlyph    = "··"
	successGlyph = "✅"
	warnGlyph    = "⚠️ "
	errorGlyph   = "❌"
)

// Color variables for console output.
var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Logger is the single point of output for a run. It is constructed once
// in the CLI entry and threaded by reference through the runner; output
// mode is fixed for the logger's lifetime. Logging calls never fail and
// never abort the check they instrument.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	jsonMode  bool
	useColors bool
	start     time.Time
	entries   []schema.LogEntry
}

// NewLogger creates a logger writing to out. In JSON mode every entry is
// serialized as one JSON object per line (newline-delimited JSON) for
// streaming consumption by CI log parsers.
func NewLogger(out io.Writer, jsonMode bool, useColors bool) *Logger {
	return &Logger{
		out:       out,
		jsonMode:  jsonMode,
		useColors: useColors,
		start:     time.Now(),
	}
}

// JSONMode reports whether the logger emits newline-delimited JSON.
func (l *Logger) JSONMode() bool {
	return l.jsonMode
}

// Header appends and emits a header-level entry.
func (l *Logger) Header(message string, data map[string]any) {
	l.log(schema.HeaderLevel, message, data)
}

// Info appends and emits an info-level entry.
func (l *Logger) Info(message string, data map[string]any) {
	l.log(schema.InfoLevel, message, data)
}

// Success appends and emits a success-level entry.
func (l *Logger) Success(message string, data map[string]any) {
	l.log(schema.SuccessLevel, message, data)
}

// Warn appends and emits a warn-level entry.
func (l *Logger) Warn(message string, data map[string]any) {
	l.log(schema.WarnLevel, message, data)
}

// Error appends and emits an error-level entry.
func (l *Logger) Error(message string, data map[string]any) {
	l.log(schema.ErrorLevel, message, data)
}

// Entries returns a copy of the entries appended so far.
func (l *Logger) Entries() []schema.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]schema.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear discards all entries and resets the start-time baseline, so
// duration measurements restart. Used only by tests.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.start = time.Now()
}

// log appends one entry and writes its rendering. Write errors are
// deliberately ignored: a logging call must never abort a run.
func (l *Logger) log(level schema.LogLevel, message string, data map[string]any) {
	entry := schema.LogEntry{
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)

	if l.jsonMode {
		l.writeJSON(entry)
		return
	}
	l.writeHuman(entry)
}

// writeJSON serializes the entry verbatim as one line. Callers hold l.mu.
func (l *Logger) writeJSON(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(l.out, string(payload))
}

// writeHuman renders the entry with a level glyph. Callers hold l.mu.
func (l *Logger) writeHuman(entry schema.LogEntry) {
	message := entry.Message
	if l.useColors {
		switch entry.Level {
		case schema.SuccessLevel:
			message = successColor.Sprint(message)
		case schema.WarnLevel:
			message = warnColor.Sprint(message)
		case schema.ErrorLevel:
			message = errorColor.Sprint(message)
		}
	}

	switch entry.Level {
	case schema.HeaderLevel:
		_, _ = fmt.Fprintf(l.out, "%s %s\n", headerGlyph, message)
	case schema.SuccessLevel:
		_, _ = fmt.Fprintf(l.out, "%s %s\n", successGlyph, message)
	case schema.WarnLevel:
		_, _ = fmt.Fprintf(l.out, "%s%s\n", warnGlyph, message)
	case schema.ErrorLevel:
		_, _ = fmt.Fprintf(l.out, "%s %s\n", errorGlyph, message)
	default:
		_, _ = fmt.Fprintf(l.out, "%s %s\n", infoGlyph, message)
	}
}
