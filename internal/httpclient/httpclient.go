// Package httpclient builds the outbound HTTP client shared by the eCard
// provider and the notification channels.
package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Timeout bounds every outbound request.
const Timeout = 30 * time.Second

// New creates a client with optional proxy support. An unparsable proxy
// URL is ignored.
func New(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   Timeout,
		Transport: transport,
	}
}

// Do sends req. Transport errors drop the request URL, which may carry a
// bot token or SendKey in its path.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, StripURL(err)
	}
	return resp, nil
}

// StripURL replaces a *url.Error with one naming only the method.
func StripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request: %w", uerr.Op, uerr.Err)
	}
	return err
}
