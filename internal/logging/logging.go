// Package logging builds the session logger. Game output goes to the
// terminal; the log records the deal, the hidden hands and every question
// for review afterwards.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultPrefix is the log file name prefix when no file is configured
const DefaultPrefix = "dod"

// Options configures the session log file
type Options struct {
	Level string
	// File is a fixed log file name, appended to across sessions. Empty
	// means <Prefix>_<timestamp>.log.
	File   string
	Dir    string
	Prefix string
	Clock  quartz.Clock
}

// ParseLevel maps a config level name to a log level
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// FileName returns the log file name for a session started at t
func FileName(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s.log", prefix, t.Format("20060102_150405"))
}

// New returns a logger writing to w at the given level
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
}

// OpenFile creates the session log file and returns a logger writing to it,
// the file path, and a function that closes the file.
func OpenFile(opts Options) (*log.Logger, string, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, "", nil, err
	}

	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	name := opts.File
	if name == "" {
		name = FileName(opts.Prefix, opts.Clock.Now())
	}
	path := name
	if !filepath.IsAbs(name) && opts.Dir != "" {
		path = filepath.Join(opts.Dir, name)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), path, f.Close, nil
}
