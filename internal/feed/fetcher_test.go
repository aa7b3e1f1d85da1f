package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcherFetch(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	f := NewFetcher(server.URL, 5*time.Second, 0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := f.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if gotAccept == "" {
		t.Fatalf("expected Accept header to be negotiated")
	}
}

func TestFetcherNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewFetcher(server.URL, 5*time.Second, 0, nil)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", fe.StatusCode)
	}
}

func TestFetcherNetworkError(t *testing.T) {
	f := NewFetcher("http://127.0.0.1:1", 500*time.Millisecond, 0, nil)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
}

func TestFetcherMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<feed><entry>`))
	}))
	defer server.Close()

	f := NewFetcher(server.URL, 5*time.Second, 0, nil)
	_, err := f.Fetch(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}
