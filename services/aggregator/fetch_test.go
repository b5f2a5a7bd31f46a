package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientGetSetsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(time.Second, "magnetar-test/1.0")
	body, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
	if ua != "magnetar-test/1.0" {
		t.Errorf("expected User-Agent header, got %q", ua)
	}
}

func TestClientGetTreatsNonSuccessAsEmpty(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}))

		client := NewClient(time.Second, "magnetar-test/1.0")
		body, err := client.Get(context.Background(), srv.URL)
		if err != nil {
			t.Errorf("status %d: expected no error, got %v", status, err)
		}
		if body != nil {
			t.Errorf("status %d: expected nil body, got %q", status, body)
		}
		srv.Close()
	}
}

func TestClientGetHonorsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	client := NewClient(5*time.Second, "magnetar-test/1.0")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("call should be abandoned at the deadline, took %s", elapsed)
	}
}
