// Package telemetry provides the process logger and Prometheus metrics.
package telemetry

import (
	"log/slog"
	"os"
)

// InitLogger configures the default logger. Output goes to stderr so the
// report tables on stdout stay machine-readable; the engine itself never
// logs while a sample is being timed, only the surrounding orchestration
// does.
func InitLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
