package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	appctx "github.com/bcama/linqlab/pkg/ctx"
)

// serve routes path through a chi pattern so URL params resolve.
func serve(pattern, path string, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get(pattern, appctx.Wrap(h))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestParam_Unescapes(t *testing.T) {
	var got string
	serve("/clientes/nombre/{nombre}", "/clientes/nombre/Ana%20Mar%C3%ADa", func(c *appctx.Context) {
		got = c.Param("nombre")
		c.Success(nil)
	})
	if got != "Ana María" {
		t.Errorf("expected decoded name, got %q", got)
	}
}

func TestParam_DecodesOnce(t *testing.T) {
	cases := map[string]string{
		"/clientes/nombre/%2541":    "%41",
		"/clientes/nombre/100%2525": "100%25",
		"/clientes/nombre/a%2520b":  "a%20b",
		"/clientes/nombre/a%2Fb":    "a/b",
	}
	for path, want := range cases {
		var got string
		serve("/clientes/nombre/{nombre}", path, func(c *appctx.Context) {
			got = c.Param("nombre")
			c.Success(nil)
		})
		if got != want {
			t.Errorf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestParamUint(t *testing.T) {
	var got uint
	rec := serve("/o/{id}", "/o/42", func(c *appctx.Context) {
		id, ok := c.ParamUint("id")
		if !ok {
			return
		}
		got = id
		c.Success(nil)
	})
	if rec.Code != http.StatusOK || got != 42 {
		t.Errorf("expected 200 and 42, got %d and %d", rec.Code, got)
	}

	for _, bad := range []string{"abc", "-1", "1.5"} {
		called := false
		rec := serve("/o/{id}", "/o/"+bad, func(c *appctx.Context) {
			if _, ok := c.ParamUint("id"); ok {
				called = true
			}
			if c.WrittenStatus() != http.StatusBadRequest {
				t.Errorf("%q: expected WrittenStatus 400, got %d", bad, c.WrittenStatus())
			}
		})
		if rec.Code != http.StatusBadRequest || called {
			t.Errorf("%q: expected 400, got %d", bad, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id"`) {
			t.Errorf("%q: expected the parameter name in errors, got %s", bad, rec.Body.String())
		}
	}
}

func TestParamDecimal(t *testing.T) {
	rec := serve("/p/{min}", "/p/12.50", func(c *appctx.Context) {
		d, ok := c.ParamDecimal("min")
		if !ok {
			return
		}
		c.Success(d.String())
	})
	if !strings.Contains(rec.Body.String(), `"12.5"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = serve("/p/{min}", "/p/cheap", func(c *appctx.Context) { c.ParamDecimal("min") })
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2024-02-01":                want,
		"2024-02-01T00:00:00":       want,
		"2024-02-01T00:00:00Z":      want,
		"2024-02-01T02:00:00+02:00": want,
		"2024-02-01T10:30:00.5Z":    time.Date(2024, 2, 1, 10, 30, 0, 5e8, time.UTC),
	}
	for in, exp := range cases {
		got, err := appctx.ParseTime(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			continue
		}
		if !got.Equal(exp) || got.Location() != time.UTC {
			t.Errorf("%q: expected %v, got %v", in, exp, got)
		}
	}

	for _, bad := range []string{"", "yesterday", "2024-13-01", "01/02/2024"} {
		if _, err := appctx.ParseTime(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestNotFoundAndWrittenStatus(t *testing.T) {
	var status int
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("no clients found")
		status = c.WrittenStatus()
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound || status != http.StatusNotFound {
		t.Errorf("expected 404, got %d / %d", rec.Code, status)
	}
	if !strings.Contains(rec.Body.String(), "no clients found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
