// Package testkit drives HTTP handlers from JSON scenario files.
//
// A scenario names a request and the response it must produce:
//
//	{
//	  "name": "sales by client",
//	  "requestUrl": "/api/ventas-por-cliente",
//	  "expectedCode": 200,
//	  "responseFileName": "bodies/sales_res.json"
//	}
//
// Every *.json directly in a scenario directory is read as scenarios, so
// request and response bodies live in a subdirectory.
//
// A file may hold one scenario object or an array of them. Expected bodies
// come from responseFileName or the inline "response" field. With
// "match": "subset" only the keys present in the expected body are
// compared; the default compares the whole document.
//
//	func TestAPI(t *testing.T) {
//	    k, _ := kernel.NewHTTPKernel(testdb.Seeded(t), kernel.Options{})
//	    testkit.RunDir(t, k.Handler(), "testdata")
//	}
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	MatchExact  = "exact"
	MatchSubset = "subset"
)

// Scenario is one request/response case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ResponseFileName string          `json:"responseFileName"`
	Response         json.RawMessage `json:"response"`
	Match            string          `json:"match"`

	dir string
}

// LoadFile reads every scenario in path, which may hold a single object or
// an array.
func LoadFile(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &scenarios); err != nil {
			return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
		}
	} else {
		var s Scenario
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
		}
		scenarios = []*Scenario{&s}
	}

	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %d in %q: %w", i, abs, err)
		}
		s.dir = filepath.Dir(abs)
	}
	return scenarios, nil
}

// LoadScenario reads a file holding exactly one scenario.
func LoadScenario(path string) (*Scenario, error) {
	scenarios, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(scenarios) != 1 {
		return nil, fmt.Errorf("testkit: %q holds %d scenarios, want 1", path, len(scenarios))
	}
	return scenarios[0], nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.ResponseFileName != "" && len(s.Response) > 0 {
		return fmt.Errorf("set responseFileName or response, not both")
	}

	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if s.RequestMethod == "" {
		s.RequestMethod = http.MethodGet
	}

	switch s.Match {
	case "":
		s.Match = MatchExact
	case MatchExact, MatchSubset:
	default:
		return fmt.Errorf("match must be %q or %q, got %q", MatchExact, MatchSubset, s.Match)
	}
	return nil
}

// RequestBodyPath returns the request body file resolved against the
// scenario's directory, or "" when none is set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the expected body file, or "" when none is set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// ExpectedBody returns the expected response document, or nil when the
// scenario only checks the status code.
func (s *Scenario) ExpectedBody() ([]byte, error) {
	if len(s.Response) > 0 {
		return s.Response, nil
	}
	p := s.ResponseBodyPath()
	if p == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("testkit: read response file %q: %w", p, err)
	}
	return data, nil
}
