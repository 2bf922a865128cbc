package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New builds the process logger. Output goes to stderr so stdout stays
// clean for report output. format "json" switches to the JSON handler.
func New(level, format string) *slog.Logger {
	lvl := parseLevel(level)

	if strings.EqualFold(format, "json") {
		h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
		return slog.New(h).With("app", "rainseason")
	}

	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h).With("app", "rainseason")
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
