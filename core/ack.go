package core

import "net/http"

// WebhookPath is where the messaging platform delivers updates.
const WebhookPath = "/api/telegram"

// SecretHeader carries the shared secret on each webhook delivery.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Ack is the JSON envelope returned to the caller of a webhook endpoint.
type Ack struct {
	Status  int    `json:"-"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ackOK() Ack {
	return Ack{Status: http.StatusOK, OK: true}
}

func ackFault() Ack {
	return Ack{Status: http.StatusInternalServerError, OK: false, Error: "Internal error"}
}
