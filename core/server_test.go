package core

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

func setupTestServer(t *testing.T, handler http.Handler) *Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	srv := NewServer("127.0.0.1:0", handler, logger)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	return srv
}

func TestServer_ServesHandler(t *testing.T) {
	srv := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ackOK())
	}))
	defer srv.Shutdown(context.Background())

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ack.OK {
		t.Errorf("expected ok ack, got %+v", ack)
	}
}

func TestServer_AddrInUse(t *testing.T) {
	srv := setupTestServer(t, http.NotFoundHandler())
	defer srv.Shutdown(context.Background())

	other := NewServer(srv.Addr(), http.NotFoundHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := other.Start(context.Background()); err == nil {
		other.Shutdown(context.Background())
		t.Fatal("expected error when address is already bound")
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	}))

	done := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr() + "/")
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	<-started
	shutdownErr := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	close(release)

	if status := <-done; status != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", status)
	}
	if err := <-shutdownErr; err != nil {
		t.Errorf("shutdown: %v", err)
	}

	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("expected request to fail after shutdown")
	}
}
