package ops_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jdelaire/postbridge/core/ops"
)

type fakePublisher struct {
	post  ops.Post
	err   error
	calls []string
}

func (f *fakePublisher) Publish(_ context.Context, body string) (ops.Post, error) {
	f.calls = append(f.calls, body)
	return f.post, f.err
}

func TestPostEmptyArgs(t *testing.T) {
	pub := &fakePublisher{}
	op := &ops.PostOp{Publisher: pub}

	reply, err := op.Execute(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "Usage") {
		t.Errorf("reply = %q, want usage hint", reply)
	}
	if len(pub.calls) != 0 {
		t.Errorf("publish calls = %d, want 0", len(pub.calls))
	}
}

func TestPostSuccess(t *testing.T) {
	pub := &fakePublisher{post: ops.Post{URL: "https://example.social/@bot/1"}}
	op := &ops.PostOp{Publisher: pub}

	reply, err := op.Execute(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "✅ Posted successfully: https://example.social/@bot/1" {
		t.Errorf("reply = %q", reply)
	}
	if len(pub.calls) != 1 || pub.calls[0] != "Hello world" {
		t.Errorf("publish calls = %q, want [Hello world]", pub.calls)
	}
}

func TestPostSuccessWithoutURL(t *testing.T) {
	op := &ops.PostOp{Publisher: &fakePublisher{}}

	reply, err := op.Execute(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(reply, "Posted to Mastodon") {
		t.Errorf("reply = %q, want fallback confirmation", reply)
	}
}

func TestPostFailure(t *testing.T) {
	cause := errors.New("401 unauthorized")
	op := &ops.PostOp{Publisher: &fakePublisher{err: cause}}

	reply, err := op.Execute(context.Background(), "hi")
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want wrapped cause", err)
	}
	if !strings.Contains(reply, "Failed to publish") {
		t.Errorf("reply = %q, want failure notice", reply)
	}
}
