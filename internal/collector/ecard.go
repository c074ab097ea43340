package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"DormPower/internal/httpclient"
)

// ErrAPI is returned when the eCard service answers with a non-zero code.
var ErrAPI = errors.New("ecard api error")

// ECardProvider implements Provider against the campus eCard REST API.
type ECardProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewECardProvider creates a provider with optional proxy support.
func NewECardProvider(baseURL, proxyURL string) *ECardProvider {
	return &ECardProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  httpclient.New(proxyURL),
	}
}

func (p *ECardProvider) Name() string { return "ecard" }

// ecardResponse is the envelope every eCard endpoint answers with.
type ecardResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Login authenticates with account credentials and returns a bearer session.
func (p *ECardProvider) Login(ctx context.Context, account, password string) (*Session, error) {
	form := url.Values{}
	form.Set("account", account)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var data struct {
		Token string `json:"token"`
	}
	if err := p.do(req, &data); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if data.Token == "" {
		return nil, fmt.Errorf("login: empty token")
	}
	return &Session{Token: data.Token}, nil
}

// RemainingPower returns the remaining kWh of room.
func (p *ECardProvider) RemainingPower(ctx context.Context, sess *Session, room string) (float64, error) {
	if sess == nil {
		return 0, fmt.Errorf("remaining power: no session")
	}
	endpoint := fmt.Sprintf("%s/api/utilities/power?room=%s", p.BaseURL, url.QueryEscape(room))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	var data struct {
		Remaining json.Number `json:"remaining"`
	}
	if err := p.do(req, &data); err != nil {
		return 0, fmt.Errorf("remaining power of %s: %w", room, err)
	}
	v, err := data.Remaining.Float64()
	if err != nil {
		return 0, fmt.Errorf("remaining power of %s: parse %q: %w", room, data.Remaining, err)
	}
	return v, nil
}

func (p *ECardProvider) do(req *http.Request, out any) error {
	resp, err := httpclient.Do(p.Client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	var env ecardResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if env.Code != 0 {
		return fmt.Errorf("%w: code %d: %s", ErrAPI, env.Code, env.Message)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("decode: missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
