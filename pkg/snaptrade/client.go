package snaptrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.snaptrade.com/api/v1"

	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 5
	defaultBurst     = 10
)

// Client is a SnapTrade API client. It is immutable after New returns and is
// safe for concurrent use.
type Client struct {
	clientID    string
	consumerKey string
	baseURL     *url.URL
	httpClient  *http.Client
	timeSync    *TimeSync
	rateLimiter *RateLimiter
	log         logrus.FieldLogger
}

type settings struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	perSecond  float64
	burst      int
	log        logrus.FieldLogger
}

// Option customises a Client at construction time.
type Option func(*settings)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(s *settings) { s.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept
// unless WithTimeout is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) { s.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithRateLimit sets the client side request rate.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *settings) {
		s.perSecond = perSecond
		s.burst = burst
	}
}

// WithLogger sets the logger used for rate limit and clock sync events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) { s.log = log }
}

// New builds a client for the given client ID and consumer key. It fails with
// *ConstructionError when either credential or an option is unusable.
func New(clientID, consumerKey string, opts ...Option) (*Client, error) {
	s := settings{
		baseURL:   DefaultBaseURL,
		perSecond: defaultRateLimit,
		burst:     defaultBurst,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	if err := validateCredential("client ID", clientID); err != nil {
		return nil, err
	}
	if err := validateCredential("consumer key", consumerKey); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(s.baseURL, "/"))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, &ConstructionError{Field: "base URL", Reason: fmt.Sprintf("%q is not an absolute http(s) URL", s.baseURL)}
	}
	if s.timeout < 0 {
		return nil, &ConstructionError{Field: "timeout", Reason: "must not be negative"}
	}
	if s.perSecond <= 0 || s.burst <= 0 {
		return nil, &ConstructionError{Field: "rate limit", Reason: "rate and burst must be positive"}
	}

	hc := s.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	if s.timeout > 0 {
		copied := *hc
		copied.Timeout = s.timeout
		hc = &copied
	}

	c := &Client{
		clientID:    clientID,
		consumerKey: consumerKey,
		baseURL:     base,
		httpClient:  hc,
		log:         s.log,
	}
	c.rateLimiter = NewRateLimiter(s.perSecond, s.burst, s.log)
	c.timeSync = NewTimeSync(c.serverTime, s.log)
	return c, nil
}

func validateCredential(field, v string) error {
	if v == "" {
		return &ConstructionError{Field: field, Reason: "must not be empty"}
	}
	if strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return &ConstructionError{Field: field, Reason: "must not contain whitespace"}
	}
	return nil
}

// ClientID returns the partner client identifier.
func (c *Client) ClientID() string {
	return c.clientID
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Sign returns the request signature for an API path (as sent, including the
// /api/v1 prefix), its encoded query string and JSON body.
func (c *Client) Sign(path, query string, body []byte) (string, error) {
	return sign(c.consumerKey, path, query, body)
}

// TimeSync exposes the server clock tracker.
func (c *Client) TimeSync() *TimeSync {
	return c.timeSync
}

// RateLimiter exposes the request pacer and quota tracker.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// do performs a signed request against endpoint (relative to the base URL)
// and decodes a successful JSON response into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, payload, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("clientId", c.clientID)
	params.Set("timestamp", strconv.FormatInt(c.timeSync.Now().Unix(), 10))
	query := params.Encode()

	path := c.baseURL.Path + endpoint
	sig, err := sign(c.consumerKey, path, query, body)
	if err != nil {
		return err
	}

	u := *c.baseURL
	u.Path = path
	u.RawQuery = query

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Signature", sig)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("snaptrade %s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	c.rateLimiter.UpdateFromHeaders(res.Header)

	if err := verify(res); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
