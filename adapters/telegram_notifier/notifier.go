package telegram_notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jdelaire/postbridge/core"
)

// Notifier sends notifications via the Telegram Bot API.
type Notifier struct {
	botToken  string
	parseMode string
	client    *http.Client
	baseURL   string
}

// New creates a Telegram notifier with the given bot token. Texts are sent
// with HTML parse mode.
func New(botToken string) *Notifier {
	return &Notifier{
		botToken:  botToken,
		parseMode: "HTML",
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://api.telegram.org",
	}
}

func (n *Notifier) Name() string { return "telegram" }

// Send delivers the notification text to notif.ChatID.
func (n *Notifier) Send(ctx context.Context, notif core.Notification) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)

	form := url.Values{
		"chat_id": {strconv.FormatInt(notif.ChatID, 10)},
		"text":    {notif.Text},
	}
	if n.parseMode != "" {
		form.Set("parse_mode", n.parseMode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	var body struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error %d: %s", resp.StatusCode, body.Description)
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !body.OK {
		return fmt.Errorf("telegram API returned ok=false: %s", body.Description)
	}

	return nil
}

// WithBaseURL sets a custom base URL (for testing).
func (n *Notifier) WithBaseURL(baseURL string) *Notifier {
	n.baseURL = strings.TrimRight(baseURL, "/")
	return n
}

// WithParseMode overrides the parse mode; "" sends plain text.
func (n *Notifier) WithParseMode(mode string) *Notifier {
	n.parseMode = mode
	return n
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
