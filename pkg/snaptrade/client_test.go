package snaptrade

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		clientID    string
		consumerKey string
		opts        []Option
		wantField   string
	}{
		{"empty client id", "", "key", nil, "client ID"},
		{"empty consumer key", "ID", "", nil, "consumer key"},
		{"whitespace in client id", "MY ID", "key", nil, "client ID"},
		{"trailing newline in key", "ID", "key\n", nil, "consumer key"},
		{"relative base url", "ID", "key", []Option{WithBaseURL("/api/v1")}, "base URL"},
		{"ftp base url", "ID", "key", []Option{WithBaseURL("ftp://example.com")}, "base URL"},
		{"negative timeout", "ID", "key", []Option{WithTimeout(-time.Second)}, "timeout"},
		{"zero rate", "ID", "key", []Option{WithRateLimit(0, 1)}, "rate limit"},
		{"zero burst", "ID", "key", []Option{WithRateLimit(1, 0)}, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.clientID, tt.consumerKey, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, c)

			var cerr *ConstructionError
			require.True(t, errors.As(err, &cerr), "want *ConstructionError, got %T", err)
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	c, err := New("PARTNER-ID", "consumer-key")
	require.NoError(t, err)

	assert.Equal(t, "PARTNER-ID", c.ClientID())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.NotNil(t, c.TimeSync())
	assert.NotNil(t, c.RateLimiter())
}

func TestNewOptions(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c, err := New("ID", "key",
		WithBaseURL("http://127.0.0.1:9999/api/v1/"),
		WithHTTPClient(hc),
		WithTimeout(5*time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/api/v1", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	// The caller's client is not mutated.
	assert.Equal(t, time.Minute, hc.Timeout)
}

func TestNewIsDeterministic(t *testing.T) {
	a, err := New("ID", "key")
	require.NoError(t, err)
	b, err := New("ID", "key")
	require.NoError(t, err)

	sigA, err := a.Sign("/api/v1/", "clientId=ID&timestamp=1", nil)
	require.NoError(t, err)
	sigB, err := b.Sign("/api/v1/", "clientId=ID&timestamp=1", nil)
	require.NoError(t, err)

	assert.Equal(t, a.ClientID(), b.ClientID())
	assert.Equal(t, sigA, sigB)
}
