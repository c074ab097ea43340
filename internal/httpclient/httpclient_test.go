package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Proxy(t *testing.T) {
	c := New("http://127.0.0.1:7890")
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, tr.Proxy)

	req := httptest.NewRequest(http.MethodGet, "https://api.telegram.org/", nil)
	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7890", u.Host)
	assert.Equal(t, Timeout, c.Timeout)
}

func TestNew_NoProxy(t *testing.T) {
	tr := New("").Transport.(*http.Transport)
	assert.Nil(t, tr.Proxy)
}

func TestDo_TransportErrorOmitsURL(t *testing.T) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		"http://127.0.0.1:1/SCT123456SECRETKEY.send", nil)
	require.NoError(t, err)

	_, err = Do(New(""), req)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRETKEY")
	assert.NotContains(t, err.Error(), "127.0.0.1:1/")
	assert.Contains(t, err.Error(), "Post request")
}

func TestStripURL_KeepsCause(t *testing.T) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.invalid/x", nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Do(New(""), req.WithContext(ctx))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), "example.invalid")
}

func TestStripURL_OtherErrorsUnchanged(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, StripURL(plain))
}
