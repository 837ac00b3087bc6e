package telegram_registrar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jdelaire/postbridge/core"
)

// allowedUpdates are the update types the dispatcher selects messages from.
var allowedUpdates = []string{"message", "edited_message", "channel_post", "edited_channel_post"}

// Registrar points the Telegram bot's webhook at this service.
type Registrar struct {
	botToken string
	client   *http.Client
	baseURL  string
	logger   *slog.Logger
}

// New creates a Telegram webhook registrar.
func New(botToken string, logger *slog.Logger) *Registrar {
	return &Registrar{
		botToken: botToken,
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  "https://api.telegram.org",
		logger:   logger,
	}
}

// WithBaseURL overrides the Telegram API base URL (for testing).
func (r *Registrar) WithBaseURL(baseURL string) *Registrar {
	r.baseURL = strings.TrimRight(baseURL, "/")
	return r
}

// WebhookURL returns the delivery URL for a public base URL.
func WebhookURL(publicBaseURL string) string {
	return strings.TrimRight(publicBaseURL, "/") + core.WebhookPath
}

// SetWebhook calls setWebhook. An empty secret registers without a
// secret_token. Calling it again with the same arguments is harmless.
func (r *Registrar) SetWebhook(ctx context.Context, publicBaseURL, secret string) error {
	hook := WebhookURL(publicBaseURL)

	allowed, err := json.Marshal(allowedUpdates)
	if err != nil {
		return fmt.Errorf("encode allowed_updates: %w", err)
	}
	form := url.Values{
		"url":             {hook},
		"allowed_updates": {string(allowed)},
	}
	if secret != "" {
		form.Set("secret_token", secret)
	}

	endpoint := fmt.Sprintf("%s/bot%s/setWebhook", r.baseURL, r.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	var body struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode == http.StatusOK {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !body.OK {
		return fmt.Errorf("telegram setWebhook error %d: %s", resp.StatusCode, body.Description)
	}

	r.logger.Info("telegram webhook set", "url", hook, "description", body.Description)
	return nil
}

// withoutURL drops the request URL from transport errors. The URL embeds
// the bot token.
func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
