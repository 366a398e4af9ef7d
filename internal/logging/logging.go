// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Setup installs a slog text handler on stderr and returns the run id every
// log line is tagged with. Verbosity maps the repeatable -v flag: 0 warn,
// 1 info, 2 and above debug.
func Setup(verbosity int) string {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	runID := uuid.NewString()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("run_id", runID))
	return runID
}
