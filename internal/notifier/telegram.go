package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"DormPower/internal/httpclient"
)

// DefaultTelegramAPI is the public Bot API endpoint.
const DefaultTelegramAPI = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, apiBase, proxyURL string) *TelegramNotifier {
	if apiBase == "" {
		apiBase = DefaultTelegramAPI
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  strings.TrimRight(apiBase, "/"),
		Client:   httpclient.New(proxyURL),
	}
}

func (t *TelegramNotifier) Name() string   { return "telegram" }
func (t *TelegramNotifier) Target() string { return t.ChatID }

// Send posts "*title*\n\ncontent" to the configured chat as MarkdownV2.
func (t *TelegramNotifier) Send(ctx context.Context, title, content string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.APIBase, t.BotToken)
	form := url.Values{}
	form.Set("chat_id", t.ChatID)
	form.Set("text", fmt.Sprintf("*%s*\n\n%s", title, content))
	form.Set("parse_mode", "MarkdownV2")

	body, status, err := postForm(ctx, t.Client, apiURL, form)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("telegram API error: status %d, body: %s", status, string(body))
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}
	return nil
}

// postForm posts an urlencoded form and returns the raw response body.
func postForm(ctx context.Context, client *http.Client, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := httpclient.Do(client, req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
