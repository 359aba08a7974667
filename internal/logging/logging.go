// Package logging builds the charmbracelet/log loggers shared by the
// mdoutline commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the given level. Unknown levels fall
// back to info. format is "text" (default), "json" or "logfmt".
func New(w io.Writer, level, format string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	switch format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "mdoutline",
		ReportTimestamp: true,
		Formatter:       formatter,
	})
}

// Stderr creates a text logger on stderr.
func Stderr(level string) *log.Logger {
	return New(os.Stderr, level, "text")
}

// File is a logger appending to a file, for full-screen modes where stderr
// belongs to the terminal UI.
type File struct {
	*log.Logger
	file *os.File
}

// OpenFile appends logfmt records to path.
func OpenFile(path, level string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &File{Logger: New(f, level, "logfmt"), file: f}, nil
}

// Close closes the log file.
func (l *File) Close() error {
	return l.file.Close()
}
