package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/models"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	source     string
	userAgent  string
	secrets    []string
}

type Option func(*Client)

// WithSource names the upstream in logs and error messages.
func WithSource(name string) Option {
	return func(c *Client) { c.source = name }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRedacted masks the given values (API keys) wherever a URL is logged.
func WithRedacted(secrets ...string) Option {
	return func(c *Client) {
		for _, s := range secrets {
			if s != "" {
				c.secrets = append(c.secrets, s)
			}
		}
	}
}

func NewClient(rl models.RateLimitSettings, opts ...Option) *Client {
	limit := rate.Inf
	if rl.MaxRequests > 0 && rl.PerDuration > 0 {
		limit = rate.Every(rl.PerDuration / time.Duration(rl.MaxRequests))
	}
	burst := rl.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(limit, burst),
		source:     "API",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues a single GET and returns the body of a 2xx response. Nothing is
// retried; callers surface the failure and the user re-triggers the fetch.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &apperrors.TransportError{Source: c.source, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("[%s] GET %s", c.source, c.redact(url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which may carry a key.
		var ue *neturl.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		logger.Error("[%s] request failed: %v", c.source, err)
		return nil, &apperrors.TransportError{Source: c.source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Error("[%s] returned status code %d", c.source, resp.StatusCode)
		return nil, &apperrors.TransportError{
			Source:     c.source,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Source: c.source, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// GetJSON performs Do and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	body, err := c.Do(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", c.source, err)
	}
	return nil
}

func (c *Client) Source() string { return c.source }

func (c *Client) redact(s string) string {
	for _, secret := range c.secrets {
		s = strings.ReplaceAll(s, secret, "***")
	}
	return s
}
