package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"DormPower/internal/httpclient"
)

// DefaultServerChanAPI is the ServerChan Turbo endpoint.
const DefaultServerChanAPI = "https://sctapi.ftqq.com"

// ServerChanNotifier pushes to one ServerChan SendKey.
type ServerChanNotifier struct {
	Key     string
	APIBase string
	Client  *http.Client
}

// NewServerChanNotifiers creates one notifier per non-empty key, sharing a client.
func NewServerChanNotifiers(keys []string, apiBase, proxyURL string) []*ServerChanNotifier {
	if apiBase == "" {
		apiBase = DefaultServerChanAPI
	}
	apiBase = strings.TrimRight(apiBase, "/")
	client := httpclient.New(proxyURL)

	var out []*ServerChanNotifier
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out = append(out, &ServerChanNotifier{Key: k, APIBase: apiBase, Client: client})
	}
	return out
}

func (s *ServerChanNotifier) Name() string { return "serverchan" }

// Target returns the key with everything after the first six characters masked.
func (s *ServerChanNotifier) Target() string {
	if len(s.Key) <= 6 {
		return s.Key
	}
	return s.Key[:6] + strings.Repeat("*", len(s.Key)-6)
}

// Send posts title and desp to {APIBase}/{key}.send.
func (s *ServerChanNotifier) Send(ctx context.Context, title, content string) error {
	apiURL := fmt.Sprintf("%s/%s.send", s.APIBase, url.PathEscape(s.Key))
	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", content)

	body, status, err := postForm(ctx, s.Client, apiURL, form)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	var result struct {
		Code    *int   `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Code == nil {
		return fmt.Errorf("serverchan API error: status %d, body: %s", status, string(body))
	}
	if *result.Code != 0 {
		return fmt.Errorf("serverchan API error: code %d: %s", *result.Code, result.Message)
	}
	return nil
}
