package sdk

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologHooks routes SDK log entries to logger at the matching level. Raise
// the logger's level to silence per-request lines.
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnLogEntry: func(_ context.Context, entry LogEntry) {
			var ev *zerolog.Event
			if entry.Level == LogLevelError {
				ev = logger.Error()
			} else {
				ev = logger.Info()
			}
			ev.Fields(entry.Fields).Msg(entry.Message)
		},
	}
}
