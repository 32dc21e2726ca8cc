package middleware

import "log/slog"

// slogLevel logs server errors at ERROR and client errors at WARN.
func slogLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
