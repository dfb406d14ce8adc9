package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrUnsupportedFormat is returned for a log format other than json or console.
var ErrUnsupportedFormat = errors.New("unsupported log format")

// New constructs a zerolog logger writing to out and installs it as the global logger.
func New(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, err
	}
	if out == nil {
		out = os.Stderr
	}

	var writer zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		writer = zerolog.New(out).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stderr && out != os.Stdout,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = writer.Level(lvl)
	return log.Logger, nil
}

// Init is New without the error: bad settings fall back to info/console on stderr.
func Init(level, format string, out io.Writer) zerolog.Logger {
	l, err := New(level, format, out)
	if err == nil {
		return l
	}
	fallback, _ := New("info", "console", os.Stderr)
	fallback.Warn().Err(err).Str("level", level).Str("format", format).Msg("invalid log settings, using defaults")
	return fallback
}

// OpenLogFile opens path for appending, creating parent directories as needed.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
