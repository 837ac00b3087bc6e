package ops

import (
	"context"
	"fmt"
	"html"

	"github.com/jdelaire/postbridge/internal/metrics"
)

const (
	postUsage    = "⚙️ Usage: <code>/post your message here</code>"
	postFailed   = "❌ Failed to publish to Mastodon. Please verify credentials and try again."
	postFallback = "Posted to Mastodon"
)

// Post is a published status.
type Post struct {
	URL string
}

// Publisher submits a status to the social network.
type Publisher interface {
	Publish(ctx context.Context, body string) (Post, error)
}

// PostOp publishes its arguments verbatim as a new status.
type PostOp struct {
	Publisher Publisher
}

func (p *PostOp) Name() string  { return "post" }
func (p *PostOp) Usage() string { return "<text>" }

func (p *PostOp) Execute(ctx context.Context, args string) (string, error) {
	if args == "" {
		return postUsage, nil
	}

	post, err := p.Publisher.Publish(ctx, args)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("failure").Inc()
		return postFailed, fmt.Errorf("publish status: %w", err)
	}
	metrics.PublishesTotal.WithLabelValues("success").Inc()

	link := post.URL
	if link == "" {
		link = postFallback
	}
	return "✅ Posted successfully: " + html.EscapeString(link), nil
}
