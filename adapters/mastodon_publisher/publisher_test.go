package mastodon_publisher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jdelaire/postbridge/adapters/mastodon_publisher"
)

func TestPublishSuccess(t *testing.T) {
	var path, auth, status, visibility string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		r.ParseForm()
		status = r.FormValue("status")
		visibility = r.FormValue("visibility")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"109","url":"https://example.social/@bot/109","content":"<p>Hello world</p>"}`))
	}))
	defer srv.Close()

	pub := mastodon_publisher.New(srv.URL, "tok", "unlisted")
	post, err := pub.Publish(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/api/v1/statuses" {
		t.Errorf("path = %s", path)
	}
	if auth != "Bearer tok" {
		t.Errorf("authorization = %q", auth)
	}
	if status != "Hello world" {
		t.Errorf("status = %q", status)
	}
	if visibility != "unlisted" {
		t.Errorf("visibility = %q", visibility)
	}
	if post.URL != "https://example.social/@bot/109" {
		t.Errorf("post = %+v", post)
	}
}

func TestPublishWithoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	post, err := mastodon_publisher.New(srv.URL, "tok", "public").Publish(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.URL != "" {
		t.Errorf("url = %q, want empty", post.URL)
	}
}

func TestPublishUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"The access token is invalid"}`))
	}))
	defer srv.Close()

	_, err := mastodon_publisher.New(srv.URL, "bad", "public").Publish(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for unauthorized response")
	}
}

func TestPublishNetworkError(t *testing.T) {
	_, err := mastodon_publisher.New("http://127.0.0.1:1", "tok", "public").Publish(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for network failure")
	}
}
