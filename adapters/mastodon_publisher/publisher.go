package mastodon_publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-mastodon"

	"github.com/jdelaire/postbridge/core/ops"
)

// Publisher posts statuses to a Mastodon instance.
type Publisher struct {
	client     *mastodon.Client
	visibility string
}

// New creates a publisher for the instance at server, authenticated with an
// access token that has the write:statuses scope.
func New(server, accessToken, visibility string) *Publisher {
	c := mastodon.NewClient(&mastodon.Config{
		Server:      strings.TrimRight(server, "/"),
		AccessToken: accessToken,
	})
	c.Timeout = 10 * time.Second
	c.UserAgent = "postbridge"

	return &Publisher{client: c, visibility: visibility}
}

// Publish creates a status with body as its text.
func (p *Publisher) Publish(ctx context.Context, body string) (ops.Post, error) {
	status, err := p.client.PostStatus(ctx, &mastodon.Toot{
		Status:     body,
		Visibility: p.visibility,
	})
	if err != nil {
		return ops.Post{}, fmt.Errorf("mastodon post status: %w", err)
	}
	return ops.Post{URL: status.URL}, nil
}
