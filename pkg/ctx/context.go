// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func OrderDetail(c *ctx.Context) {
//	    id, ok := c.ParamUint("orderId")
//	    if !ok {
//	        return // 400 already sent
//	    }
//	    c.Success(detail)
//	}
//
//	router.Get("/pedido-detalle/{orderId}", "orders.detail", ctx.Wrap(OrderDetail))
package ctx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bcama/linqlab/pkg/logger"
	"github.com/bcama/linqlab/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // 0 until a response is written
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter ("/x/{id}" → c.Param("id")). chi
// matches on RawPath when the request has one, so only then is the value
// still escaped.
func (c *Context) Param(key string) string {
	v := chi.URLParam(c.R, key)
	if c.R.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// ParamUint parses a path parameter as a non-negative integer. On failure it
// sends a 400 and returns false.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, strconv.IntSize)
	if err != nil {
		c.badParam(key, "must be a non-negative integer")
		return 0, false
	}
	return uint(n), true
}

// ParamDecimal parses a path parameter as a decimal number. On failure it
// sends a 400 and returns false.
func (c *Context) ParamDecimal(key string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(c.Param(key))
	if err != nil {
		c.badParam(key, "must be a decimal number")
		return decimal.Zero, false
	}
	return d, true
}

// ParamTime parses a path parameter with ParseTime. On failure it sends a
// 400 and returns false.
func (c *Context) ParamTime(key string) (time.Time, bool) {
	t, err := ParseTime(c.Param(key))
	if err != nil {
		c.badParam(key, err.Error())
		return time.Time{}, false
	}
	return t, true
}

var errInvalidTime = errors.New("must be a date (2006-01-02) or an RFC 3339 date-time")

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTime accepts RFC 3339, a zone-less date-time or a bare date. Values
// without a zone are read as UTC. The result is always in UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidTime
}

func (c *Context) badParam(key, problem string) {
	c.status = http.StatusBadRequest
	response.BadRequest(c.W, "invalid path parameter", map[string]string{key: problem})
}

// Method returns the HTTP method of the request.
func (c *Context) Method() string { return c.R.Method }

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.Context()) }

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v as-is with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends a 200 envelope with data.
func (c *Context) Success(data any) {
	c.status = http.StatusOK
	response.Success(c.W, data)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	c.status = http.StatusNotFound
	response.NotFound(c.W, message...)
}

// InternalError logs err against the request and sends a bare 500.
func (c *Context) InternalError(err error) {
	c.Logger().Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	c.status = http.StatusInternalServerError
	response.InternalError(c.W)
}

// WrittenStatus returns the status code written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
