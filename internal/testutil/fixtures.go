// Package testutil loads the JSON fixtures under testdata/ and serves them
// from an httptest server standing in for the directions API.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
)

// GetTestDataPath returns absolute path to testdata/
func GetTestDataPath() string {
	wd, _ := os.Getwd()
	for {
		testdataPath := filepath.Join(wd, "testdata")
		if _, err := os.Stat(filepath.Join(testdataPath, "two_steps.json")); err == nil {
			return testdataPath
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			panic("Could not find testdata directory")
		}
		wd = parent
	}
}

// LoadFixture reads a raw fixture body
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(GetTestDataPath(), name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return data
}

// LoadResponse reads and decodes a fixture
func LoadResponse(t testing.TB, name string) *directions.Response {
	t.Helper()
	res, err := directions.DecodeResponse(LoadFixture(t, name))
	if err != nil {
		t.Fatalf("Failed to decode fixture %s: %v", name, err)
	}
	return res
}

// DirectionsServer serves a fixed body and status and records requests.
type DirectionsServer struct {
	*httptest.Server
	hits      atomic.Int32
	lastQuery atomic.Pointer[string]
}

// NewDirectionsServer starts a server answering every request with body and status.
// It is closed when the test ends.
func NewDirectionsServer(t testing.TB, status int, body []byte) *DirectionsServer {
	t.Helper()
	ds := &DirectionsServer{}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.hits.Add(1)
		q := r.URL.RawQuery
		ds.lastQuery.Store(&q)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(ds.Close)
	return ds
}

// Hits returns the number of requests served
func (ds *DirectionsServer) Hits() int {
	return int(ds.hits.Load())
}

// LastQuery returns the raw query string of the latest request
func (ds *DirectionsServer) LastQuery() string {
	if q := ds.lastQuery.Load(); q != nil {
		return *q
	}
	return ""
}
