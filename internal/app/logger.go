package app

import (
	"cmp"
	"io"
	"log/slog"
	"maps"
	"slices"
)

// logLevels maps the accepted --log-level values onto slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// levelNames lists the accepted level names from most to least verbose.
func levelNames() []string {
	return slices.SortedFunc(maps.Keys(logLevels), func(a, b string) int {
		return cmp.Compare(logLevels[a], logLevels[b])
	})
}

// newLogger builds the build log of an App from a validated Config. Nothing
// here touches the global logger, so concurrent Apps keep separate logs.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[cfg.LogLevel]}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
