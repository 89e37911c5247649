// Package github is the repository metadata client: authentication,
// pagination, rate-limit backoff, retry, and the error taxonomy. Everything
// above this package works with snapshot values, never API response types.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const defaultRequestTimeout = 30 * time.Second

type Client struct {
	gh          *github.Client
	quota       *QuotaGate
	log         *zap.Logger
	maxAttempts int
}

type options struct {
	log         *zap.Logger
	quota       *QuotaGate
	baseURL     string
	maxAttempts int
	httpClient  *http.Client
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithQuotaGate(gate *QuotaGate) Option {
	return func(o *options) { o.quota = gate }
}

// WithBaseURL points the client at a different API endpoint. Test use.
func WithBaseURL(raw string) Option {
	return func(o *options) { o.baseURL = raw }
}

func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithHTTPClient replaces the underlying HTTP client entirely. Test use.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.quota == nil {
		o.quota = NewQuotaGate(0)
	}
	if o.maxAttempts <= 0 {
		o.maxAttempts = defaultMaxAttempts
	}

	hc := o.httpClient
	if hc == nil {
		transport := http.RoundTripper(http.DefaultTransport)
		transport = &loggingTransport{base: transport, log: o.log}
		if token != "" {
			source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
			transport = &oauth2.Transport{Source: source, Base: transport}
		}
		hc = &http.Client{Transport: transport, Timeout: defaultRequestTimeout}
	}

	gh := github.NewClient(hc)
	if o.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github client: invalid base URL: %w", err)
		}
		gh.BaseURL = base
	}

	return &Client{
		gh:          gh,
		quota:       o.quota,
		log:         o.log,
		maxAttempts: o.maxAttempts,
	}, nil
}

// Verify checks that the token authenticates. Invalid credentials abort the
// run before any repository is processed.
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, "verify credentials", func() (*github.Response, error) {
		_, resp, err := c.gh.Users.Get(ctx, "")
		return resp, err
	})
}

// loggingTransport emits one debug line per request and response. The token
// never appears in the logged URL; auth lives in a header added above this
// transport.
type loggingTransport struct {
	base http.RoundTripper
	log  *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)),
	}
	if err != nil {
		t.log.Debug("github api error", append(fields, zap.Error(err))...)
		return resp, err
	}
	t.log.Debug("github api", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, err
}
