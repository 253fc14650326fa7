package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup configures the process-wide logger exactly once and returns it.
// Later calls return the logger from the first call regardless of arguments.
func Setup(level string, w io.Writer) *slog.Logger {
	once.Do(func() {
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: parseLevel(level),
		}))
		slog.SetDefault(logger)
	})
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
