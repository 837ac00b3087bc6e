package telegram_registrar_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jdelaire/postbridge/adapters/telegram_registrar"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetWebhook(t *testing.T) {
	var path string
	var form map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		r.ParseForm()
		form = r.PostForm
		w.Write([]byte(`{"ok":true,"result":true,"description":"Webhook was set"}`))
	}))
	defer srv.Close()

	reg := telegram_registrar.New("tok", testLogger()).WithBaseURL(srv.URL)
	if err := reg.SetWebhook(context.Background(), "https://bridge.example.com/", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/bottok/setWebhook" {
		t.Errorf("path = %s", path)
	}
	if got := form["url"]; len(got) != 1 || got[0] != "https://bridge.example.com/api/telegram" {
		t.Errorf("url = %v", got)
	}
	if got := form["secret_token"]; len(got) != 1 || got[0] != "s3cret" {
		t.Errorf("secret_token = %v", got)
	}
	if got := form["allowed_updates"]; len(got) != 1 || !strings.Contains(got[0], "channel_post") {
		t.Errorf("allowed_updates = %v", got)
	}
}

func TestSetWebhookWithoutSecret(t *testing.T) {
	var hasSecret bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		_, hasSecret = r.PostForm["secret_token"]
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer srv.Close()

	reg := telegram_registrar.New("tok", testLogger()).WithBaseURL(srv.URL)
	if err := reg.SetWebhook(context.Background(), "https://bridge.example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasSecret {
		t.Error("expected no secret_token when secret is empty")
	}
}

func TestSetWebhookAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	reg := telegram_registrar.New("bad", testLogger()).WithBaseURL(srv.URL)
	err := reg.SetWebhook(context.Background(), "https://bridge.example.com", "")
	if err == nil || !strings.Contains(err.Error(), "Unauthorized") {
		t.Fatalf("error = %v, want Unauthorized", err)
	}
}

func TestSetWebhookNetworkError(t *testing.T) {
	reg := telegram_registrar.New("123456:bot-token", testLogger()).WithBaseURL("http://127.0.0.1:1")
	err := reg.SetWebhook(context.Background(), "https://bridge.example.com", "")
	if err == nil {
		t.Fatal("expected error for network failure")
	}
	if strings.Contains(err.Error(), "bot-token") {
		t.Errorf("error leaks bot token: %v", err)
	}
}

func TestWebhookURL(t *testing.T) {
	if got := telegram_registrar.WebhookURL("https://a.example/"); got != "https://a.example/api/telegram" {
		t.Errorf("WebhookURL = %q", got)
	}
}
