package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jdelaire/postbridge/core/ops"
	"github.com/jdelaire/postbridge/core/policy"
	"github.com/jdelaire/postbridge/internal/metrics"
)

const (
	notifyTimeout = 10 * time.Second
	lockedText    = "🚫 This bot is locked to selected users."
)

// Delivery is one inbound webhook call.
type Delivery struct {
	SecretToken string
	Body        io.Reader
}

// Dispatcher authorizes webhook deliveries and dispatches commands to ops.
type Dispatcher struct {
	settings  SettingsSource
	ops       *ops.Registry
	notifier  Notifier
	registrar Registrar
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(settings SettingsSource, opsReg *ops.Registry, notifier Notifier, registrar Registrar, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		settings:  settings,
		ops:       opsReg,
		notifier:  notifier,
		registrar: registrar,
		logger:    logger,
	}
}

// Handle processes a delivery: verify, decode, authorize, parse, execute,
// respond. The returned Ack is successful unless decoding or routing
// faulted; failed commands are reported to the chat, not to the caller.
func (d *Dispatcher) Handle(ctx context.Context, dl Delivery) (ack Ack) {
	log := d.logger.With("delivery_id", uuid.New().String())
	cfg := d.settings.Snapshot()
	pol := policy.New(cfg.WebhookSecret, policy.ParseAllowlist(cfg.AllowedChatIDs))

	// A wrong secret gets the same answer as a valid delivery.
	if err := pol.VerifySecret(dl.SecretToken); err != nil {
		log.Debug("delivery rejected", "error", err)
		metrics.DeliveriesTotal.WithLabelValues("unauthenticated").Inc()
		return ackOK()
	}

	update, err := DecodeUpdate(dl.Body)
	if err != nil {
		log.Error("webhook delivery failed", "error", err)
		metrics.DeliveriesTotal.WithLabelValues("fault").Inc()
		return ackFault()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("webhook delivery failed", "update_id", update.UpdateID, "panic", r)
			metrics.DeliveriesTotal.WithLabelValues("fault").Inc()
			ack = ackFault()
		}
	}()

	outcome := d.dispatch(ctx, log, pol, update)
	metrics.DeliveriesTotal.WithLabelValues(outcome).Inc()
	return ackOK()
}

// dispatch routes a decoded update and reports how it ended.
func (d *Dispatcher) dispatch(ctx context.Context, log *slog.Logger, pol *policy.Policy, update InboundUpdate) string {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return "ignored"
	}
	chatID := msg.Chat.ID

	if err := pol.Authorize(chatID); err != nil {
		log.Info("message rejected by policy", "chat_id", chatID, "error", err)
		d.respond(ctx, log, chatID, lockedText)
		return "rejected"
	}

	cmd, ok := ParseCommand(msg.Text)
	if !ok {
		return "ignored"
	}

	op := d.ops.Get(cmd.Name)
	if op == nil {
		d.respond(ctx, log, chatID, ops.HelpText(d.ops))
		return "help"
	}

	metrics.CommandsTotal.WithLabelValues(op.Name()).Inc()
	log.Info("executing command", "op", op.Name(), "chat_id", chatID, "kind", update.Kind.String())

	reply, err := op.Execute(ctx, cmd.Args)
	if reply != "" {
		d.respond(ctx, log, chatID, reply)
	}
	if err != nil {
		// Reported to the chat above; the delivery is still acknowledged.
		log.Error("op failed", "op", op.Name(), "chat_id", chatID, "error", err)
		return "op_failed"
	}
	return "handled"
}

func (d *Dispatcher) respond(ctx context.Context, log *slog.Logger, chatID int64, text string) {
	n := Notification{
		ID:     uuid.New().String(),
		ChatID: chatID,
		Text:   text,
	}
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := d.notifier.Send(ctx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failure").Inc()
		log.Error("failed to send response", "notification_id", n.ID, "chat_id", chatID, "notifier", d.notifier.Name(), "error", err)
		return
	}
	metrics.NotificationsTotal.WithLabelValues("success").Inc()
	log.Debug("response sent", "notification_id", n.ID, "chat_id", chatID)
}

// ErrMissingBaseURL is returned by RegisterWebhook when no public base URL
// is configured.
var ErrMissingBaseURL = errors.New("missing APP_BASE_URL for webhook setup")

// RegisterWebhook points the messaging platform at this service. Unlike
// Handle, every fault is returned to the caller.
func (d *Dispatcher) RegisterWebhook(ctx context.Context) (Ack, error) {
	cfg := d.settings.Snapshot()
	if cfg.BaseURL == "" {
		metrics.WebhookRegistrationsTotal.WithLabelValues("failure").Inc()
		return Ack{}, ErrMissingBaseURL
	}

	if err := d.registrar.SetWebhook(ctx, cfg.BaseURL, cfg.WebhookSecret); err != nil {
		metrics.WebhookRegistrationsTotal.WithLabelValues("failure").Inc()
		return Ack{}, err
	}

	metrics.WebhookRegistrationsTotal.WithLabelValues("success").Inc()
	d.logger.Info("webhook registered", "base_url", cfg.BaseURL, "secret", cfg.WebhookSecret != "")
	ack := ackOK()
	ack.Message = "Webhook configured"
	return ack, nil
}
