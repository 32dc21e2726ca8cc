package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// Run executes every scenario in the file at path as a subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := LoadFile(path)
	if err != nil {
		t.Fatalf("testkit: %v", err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			Execute(t, handler, s)
		})
	}
}

// RunDir runs every *.json scenario file directly in dir; subdirectories
// are not searched. Files that fail to load are reported and skipped.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		scenarios, err := LoadFile(path)
		if err != nil {
			t.Errorf("testkit: %v", err)
			continue
		}
		for _, s := range scenarios {
			t.Run(s.Name, func(t *testing.T) {
				Execute(t, handler, s)
			})
		}
	}
}

// Execute fires one scenario's request at handler and checks the result.
func Execute(t *testing.T, handler http.Handler, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.ExpectedBody()
	if err != nil {
		t.Errorf("[%s] %v", s.Name, err)
		return rec
	}
	AssertJSONBody(t, s, expected, rec.Body.Bytes())
	return rec
}
