// Package log provides centralized slog-based logging with an optional
// rotating file output.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // "console" or "json"
	File   string // optional path; enables rotated file logging
}

// Init configures the default slog logger.
func Init(opts Options) {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		w = io.MultiWriter(os.Stderr, &lj.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	hopts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
