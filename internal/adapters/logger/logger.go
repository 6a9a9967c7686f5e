// Package logger implements ports.Logger on log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/cachegen/internal/core/ports"
)

// messager matches errors that report their own message without the cause chain.
type messager interface {
	Message() string
}

// metadataer matches errors that carry structured key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain as it is printed.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a Logger printing human-readable lines to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stderr, nil)),
		output: os.Stderr,
	}
}

// SetOutput redirects the logger. A nil writer means stderr. The JSON mode is kept.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON lines and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

func (l *Logger) handler() slog.Handler {
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. Pretty mode prints the chain as a cause list; JSON mode
// emits the error under the "error" key so zerr metadata becomes fields.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries flattens the chain of err. Errors exposing Message are
// unwrapped one level at a time; the first plain error ends the walk with
// its full text. An entry with an empty message hands its metadata to the
// next entry, which is what zerr.With produces for plain errors.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		carried map[string]any
	)

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}
		if carried != nil {
			if meta == nil {
				meta = make(map[string]any, len(carried))
			}
			for k, v := range carried {
				if _, exists := meta[k]; !exists {
					meta[k] = v
				}
			}
			carried = nil
		}

		next := errors.Unwrap(current)
		if m.Message() == "" && next != nil {
			carried = meta
			current = next
			continue
		}

		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		current = next
	}

	return entries
}

const (
	mainIndent  = "       "
	causeIndent = "      "
)

// formatErrorEntries renders entries as the main error followed by a
// "Caused by:" list. Metadata keys are printed sorted under their entry.
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		indent := causeIndent
		if i == 0 {
			indent = mainIndent
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, kv := range sortedMetadata(entry.Metadata) {
			lines = append(lines, indent+kv)
		}
	}

	return strings.Join(lines, "\n")
}

func sortedMetadata(meta map[string]any) []string {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+": "+slog.AnyValue(meta[k]).String())
	}
	return out
}
