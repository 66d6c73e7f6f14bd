// Package logging wires the consistify server's slog output: JSON on
// stdout at boot, later fanned out to the system_logs table through
// MultiHandler and DBHandler.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default JSON logger on stdout. The level comes
// from LOG_LEVEL (debug/info/warn/error) and falls back to info.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
