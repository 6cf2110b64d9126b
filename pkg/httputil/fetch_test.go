package httputil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/errors"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newFetcher(t *testing.T, c cache.Cache) *Fetcher {
	t.Helper()
	return NewFetcher(Options{Cache: c, Delay: time.Millisecond})
}

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("missing User-Agent")
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := newFetcher(t, fc)

	res, err := f.Fetch(t.Context(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(res.Body) != string(png) || res.ContentType != "image/png" || res.CacheHit {
		t.Fatalf("unexpected response %+v", res)
	}

	res, err = f.Fetch(t.Context(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if !res.CacheHit {
		t.Error("second fetch should hit the cache")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(png)
	}))
	defer srv.Close()

	res, err := newFetcher(t, nil).Fetch(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Body) != len(png) {
		t.Errorf("body length = %d", len(res.Body))
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3", got)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.Write(make([]byte, 64))
		}
	}))
	defer srv.Close()

	f := NewFetcher(Options{MaxBytes: 32, Delay: time.Millisecond})

	tests := []struct {
		name string
		url  string
		code errors.Code
	}{
		{"scheme", "ftp://example.com/a.png", errors.ErrCodeValidation},
		{"relative", "/a.png", errors.ErrCodeValidation},
		{"not found", srv.URL + "/missing", errors.ErrCodeNotFound},
		{"forbidden", srv.URL + "/forbidden", errors.ErrCodeInvalidInput},
		{"too large", srv.URL + "/big", errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(t.Context(), tt.url)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}
