// Package logging sets up the structured log. The terminal frontend owns
// the screen, so records go to a file unless asked otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Logger is a slog.Logger tagged with a session id, plus the file behind it.
type Logger struct {
	*slog.Logger
	Session string

	closer io.Closer
}

// Open creates a logger writing text records to path. An empty path
// discards everything and "-" writes to stderr.
func Open(path string, level slog.Level) (*Logger, error) {
	var w io.Writer
	var closer io.Closer

	switch path {
	case "":
		return Discard(), nil
	case "-":
		w = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return New(w, level, closer), nil
}

// New wraps w. closer, if not nil, is closed by Close.
func New(w io.Writer, level slog.Level, closer io.Closer) *Logger {
	session := uuid.NewString()
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		Logger:  slog.New(h).With("session", session),
		Session: session,
		closer:  closer,
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// Component returns a child logger for one part of the program.
func (l *Logger) Component(name string) *slog.Logger {
	return l.With("component", name)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
