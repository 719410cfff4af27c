package logger

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// LevelNone sits above every slog level so nothing is emitted.
const LevelNone = slog.Level(math.MaxInt32)

const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatPretty = "pretty"
)

type Options struct {
	Level     slog.Level
	Format    string
	AddSource bool
}

// ParseLevel accepts debug, info, warn, error and none. Anything else maps to
// error.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "":
		return LevelNone
	default:
		return slog.LevelError
	}
}

// New builds a logger writing to w. The pretty format colours its output only
// when w is a terminal.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	handlerOptions := &slog.HandlerOptions{
		AddSource: opts.AddSource,
		Level:     opts.Level,
	}

	switch strings.ToLower(opts.Format) {
	case FormatJSON, "":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	case FormatPretty:
		return slog.New(tint.NewHandler(w, &tint.Options{
			AddSource:  opts.AddSource,
			Level:      opts.Level,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(w),
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

// OpenWriter opens path for appending, creating parent directories. It falls
// back to stderr when path is empty or cannot be opened.
func OpenWriter(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr
	}
	return f
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
