package internal

import (
	"io"
	"log/slog"
	"time"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the kiosk's logger. Production kiosks ship JSON lines to
// a shared sink, so every record carries kiosk_id; development gets text.
// An unknown level logs at info.
func NewLogger(w io.Writer, env string, level string, kioskID string) *slog.Logger {
	lvl, ok := logLevels[level]
	if !ok {
		slog.Default().Warn("unknown log level, logging at info", slog.String("value", level))
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if env == "prod" {
		opts.ReplaceAttr = utcTimestamps
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With(slog.String("kiosk_id", kioskID))
}

// utcTimestamps writes record times in UTC so kiosks in different time zones
// sort together in the sink.
func utcTimestamps(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}
