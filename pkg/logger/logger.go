// Package logger provides the service-wide structured logger built on log/slog.
//
// Handlers log through WithCtx so every line carries the request ID:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("sales report built", "rows", len(rows))
//	// → time=... level=INFO msg="sales report built" request_id=a1b2c3d4 rows=2
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/bcama/linqlab/config"
)

var (
	// L is the base logger. Replace it only through Attach.
	L *slog.Logger

	mu   sync.Mutex
	base slog.Handler
)

func init() {
	base = newHandler(os.Stdout, config.AppEnv())
	L = slog.New(base)
	slog.SetDefault(L)
}

// newHandler picks JSON output for production and text everywhere else.
func newHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Attach fans every future record out to h in addition to stdout.
func Attach(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()

	base = NewMultiHandler(base, h)
	L = slog.New(base)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the logger injected by the request logging middleware,
// or the base logger when the context carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
