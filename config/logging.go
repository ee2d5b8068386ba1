package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a config level name to a slog level. Unknown names
// fall back to error.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// InitLogging installs the default slog logger at the configured level.
// When toFile is set (the terminal UI owns the screen) records go to the log
// file in the cache directory; otherwise to stderr. The returned closer
// releases the log file and is never nil.
func InitLogging(cfg *Config, toFile bool) (slog.Level, io.Closer) {
	level := ParseLogLevel(cfg.Logging.Level)

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if toFile {
		if err := EnsureDirs(); err == nil {
			//nolint:gosec // G302: 0644 is appropriate for a log file
			f, err := os.OpenFile(GetLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				out = f
				closer = f
			} else {
				out = io.Discard
			}
		} else {
			out = io.Discard
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "level", level.String(), "file", toFile)
	return level, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
