package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/pkg/errors"
)

const (
	telegramName    = "telegram"
	telegramBaseURL = "https://api.telegram.org"
)

// TelegramNotifier sends HTML messages through the Telegram Bot API
type TelegramNotifier struct {
	client  *http.Client
	baseURL string
	token   string
	chatID  string
}

// NewTelegramNotifier creates a notifier posting to chatID
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: telegramBaseURL,
		token:   token,
		chatID:  chatID,
	}
}

// Name returns "telegram"
func (t *TelegramNotifier) Name() string {
	return telegramName
}

// Notify sends the formatted text to the configured chat
func (t *TelegramNotifier) Notify(ctx context.Context, n Notification) error {
	return t.Send(ctx, t.chatID, n.Text)
}

// Send posts text to chatID. Missing credentials make it a no-op.
func (t *TelegramNotifier) Send(ctx context.Context, chatID, text string) error {
	if t.token == "" || chatID == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return errors.NewNotification(telegramName, "failed to encode message", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.NewNotification(telegramName, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.NewNotification(telegramName, "send failed", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewNotification(telegramName, fmt.Sprintf("unexpected status code: %d: %s", resp.StatusCode, body), nil)
	}

	logger.ForNotifier(telegramName).Debug().Str("chat_id", chatID).Msg("Message sent")
	return nil
}

// Close is a no-op for Telegram
func (t *TelegramNotifier) Close() error {
	return nil
}

// stripURL drops the request URL, which carries the bot token, from client errors
func stripURL(err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
