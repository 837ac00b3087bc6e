package core

import "context"

// Notifier delivers notifications to an external channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Registrar tells the messaging platform where to deliver webhooks.
// Registration is idempotent.
type Registrar interface {
	SetWebhook(ctx context.Context, baseURL, secret string) error
}
