// Package logger wraps charmbracelet/log with the messages the CLI emits.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing info and above to w.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "mdrender",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithLevel(io.Discard, log.FatalLevel)
}

// LevelFor maps the CLI verbosity flags to a level. Quiet wins.
func LevelFor(quiet, verbose bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// ConfigLoaded logs which configuration file was applied.
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "path", path)
}

// Rendered logs a completed render of a document.
func (l *Logger) Rendered(source string, images int, duration time.Duration) {
	l.Info("rendered",
		"source", source,
		"images", images,
		"duration", duration.Round(time.Millisecond))
}

// ImagesSettled logs the outcome of waiting for a tree's images.
func (l *Logger) ImagesSettled(loaded, failed, pending int) {
	l.Debug("images settled",
		"loaded", loaded,
		"failed", failed,
		"pending", pending)
}

// WatchEvent logs a file change that triggers a rebuild.
func (l *Logger) WatchEvent(path, op string) {
	l.Debug("file changed",
		"path", path,
		"op", op)
}

// FileError logs an error for a specific file.
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// EnvWarning logs a problem with an environment variable.
func (l *Logger) EnvWarning(msg string) {
	l.Warn(msg)
}
