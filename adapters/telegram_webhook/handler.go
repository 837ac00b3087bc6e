package telegram_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jdelaire/postbridge/core"
)

// registrationFailed is returned for registration faults other than a
// missing base URL. The detail is logged only.
const registrationFailed = "Webhook registration failed"

// Dispatcher is the part of core.Dispatcher the HTTP endpoints use.
type Dispatcher interface {
	Handle(ctx context.Context, dl core.Delivery) core.Ack
	RegisterWebhook(ctx context.Context) (core.Ack, error)
}

// Handler exposes webhook deliveries and the registration trigger over HTTP.
type Handler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewHandler creates a webhook Handler.
func NewHandler(d Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{dispatcher: d, logger: logger}
}

// Deliver handles POST deliveries from Telegram.
func (h *Handler) Deliver(w http.ResponseWriter, r *http.Request) {
	ack := h.dispatcher.Handle(r.Context(), core.Delivery{
		SecretToken: r.Header.Get(core.SecretHeader),
		Body:        r.Body,
	})
	writeAck(w, ack)
}

// Action handles GET requests. "?action=webhook" registers the webhook;
// anything else is a liveness answer.
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "webhook":
		ack, err := h.dispatcher.RegisterWebhook(r.Context())
		if err != nil {
			h.logger.Error("webhook registration failed", "error", err)
			msg := registrationFailed
			if errors.Is(err, core.ErrMissingBaseURL) {
				msg = err.Error()
			}
			writeAck(w, core.Ack{Status: http.StatusInternalServerError, Error: msg})
			return
		}
		writeAck(w, ack)
	default:
		writeAck(w, core.Ack{Status: http.StatusOK, OK: true})
	}
}

func writeAck(w http.ResponseWriter, ack core.Ack) {
	status := ack.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ack)
}
