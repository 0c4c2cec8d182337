package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// RangeServer serves one in-memory resource over HTTP with optional faults.
type RangeServer struct {
	*httptest.Server

	data []byte

	// FailFirst makes the first N GET requests answer 503.
	FailFirst int32
	// NoRanges drops the Accept-Ranges header and ignores Range requests.
	NoRanges bool

	gets  atomic.Int32
	heads atomic.Int32
}

// NewRangeServer starts a server for data and stops it when t ends.
func NewRangeServer(t testing.TB, data []byte) *RangeServer {
	t.Helper()
	s := &RangeServer{data: data}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// ResourceURL returns the address of the resource.
func (s *RangeServer) ResourceURL() string {
	return s.Server.URL + "/resource.bin"
}

// Gets returns the number of GET requests received.
func (s *RangeServer) Gets() int { return int(s.gets.Load()) }

// Heads returns the number of HEAD requests received.
func (s *RangeServer) Heads() int { return int(s.heads.Load()) }

func (s *RangeServer) serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodHead:
		s.heads.Add(1)
	case http.MethodGet:
		n := s.gets.Add(1)
		if n <= s.FailFirst {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
	}

	if s.NoRanges {
		r.Header.Del("Range")
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(s.data)))
		if r.Method == http.MethodGet {
			_, _ = w.Write(s.data)
		}
		return
	}

	http.ServeContent(w, r, "resource.bin", time.Time{}, bytes.NewReader(s.data))
}

// NewRedirectServer starts a server that redirects every request to target.
func NewRedirectServer(t testing.TB, target string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}
