package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds the process-wide logger and installs it as the slog
// default so library code logging through slog shares the handler.
// Production environments emit JSON lines; dev and local get the text
// handler for readable terminal output.
func New(opts Options) *slog.Logger {
	log := build(os.Stdout, opts)
	slog.SetDefault(log)
	return log
}

func build(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:     parseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var h slog.Handler
	switch strings.ToLower(opts.Env) {
	case "dev", "development", "local":
		h = slog.NewTextHandler(w, hopts)
	default:
		h = slog.NewJSONHandler(w, hopts)
	}

	return slog.New(h).With(
		slog.String("service", opts.Service),
		slog.String("env", opts.Env),
	)
}

// parseLevel is forgiving: unknown or empty strings mean info rather
// than failing startup over a typo in an env var.
func parseLevel(lvl string) slog.Level {
	if level, ok := levels[strings.ToLower(strings.TrimSpace(lvl))]; ok {
		return level
	}
	return slog.LevelInfo
}
