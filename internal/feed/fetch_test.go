package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/team.ics":
			w.Header().Set("Content-Type", "text/calendar")
			_, _ = w.Write(fixture())
		case "/empty.ics":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(0)
	ctx := context.Background()

	body, err := f.Fetch(ctx, srv.URL+"/team.ics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != len(fixture()) {
		t.Errorf("expected %d bytes, got %d", len(fixture()), len(body))
	}

	if _, err := f.Fetch(ctx, srv.URL+"/missing.ics"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := f.Fetch(ctx, srv.URL+"/empty.ics"); err != ErrEmptyBody {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewFetcher(50 * time.Millisecond)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected timeout error")
	}
}

func TestNewFetcher_DefaultTimeout(t *testing.T) {
	f := NewFetcher(-1)
	if f.client.Timeout != DefaultFetchTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultFetchTimeout, f.client.Timeout)
	}
}
