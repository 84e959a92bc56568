package logger

import (
	"log/slog"
	"os"
	"sync"

	"innerventory/internal/config"
)

var (
	singleton *slog.Logger
	once      sync.Once
)

// Init builds the process-wide slog logger from the config. The first call
// wins; every later call gets the same instance back regardless of its
// arguments.
func Init(cfg config.Config) (*slog.Logger, error) {
	once.Do(func() {
		opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

		var handler slog.Handler
		if cfg.LogFormat == "text" {
			handler = slog.NewTextHandler(os.Stdout, opts)
		} else {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}

		singleton = slog.New(handler)
	})

	return singleton, nil
}

// L returns the logger built by Init, or nil if Init has not run.
func L() *slog.Logger {
	return singleton
}

func parseLevel(s string) slog.Level {
	switch s {
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
