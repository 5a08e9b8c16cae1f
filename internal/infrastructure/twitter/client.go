// Package twitter implements the search strategy and reply poster against the
// Twitter API v2. Recent search authenticates with the app bearer token;
// posting replies requires an OAuth 1.0a user context.
package twitter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"

	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/domain"
)

const defaultBaseURL = "https://api.twitter.com"

// Client talks to the Twitter API v2 for both search and posting.
type Client struct {
	baseURL     string
	bearerToken string
	searchHTTP  *http.Client
	postHTTP    *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

// NewClient wires HTTP clients from credentials. When httpClient is non-nil
// it is used verbatim for both call paths, which lets tests point the client
// at a local server without signing.
func NewClient(cfg config.TwitterConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		bearerToken: cfg.BearerToken,
		logger:      logger,
		now:         time.Now,
	}

	if httpClient != nil {
		c.searchHTTP = httpClient
		c.postHTTP = httpClient
		return c
	}

	c.searchHTTP = &http.Client{Timeout: 20 * time.Second}

	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	c.postHTTP = oauthCfg.Client(oauth1.NoContext, token)
	c.postHTTP.Timeout = 20 * time.Second

	return c
}

// Name identifies the strategy inside the search registry.
func (c *Client) Name() string {
	return config.PlatformTwitter
}

// statusError maps a non-2xx response to the error taxonomy. Duplicate
// detection for replies happens before this is called.
func statusError(op string, resp *http.Response, now time.Time) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.AuthError{Op: op, Status: resp.Status}
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{Op: op, RetryAfter: retryAfter(resp, now)}
	default:
		return &domain.NetworkError{Op: op, Err: &statusCodeError{status: resp.Status}}
	}
}

type statusCodeError struct {
	status string
}

func (e *statusCodeError) Error() string {
	return "unexpected status " + e.status
}

// retryAfter extracts throttle guidance from Retry-After (seconds) or the
// x-rate-limit-reset epoch header. Zero when the platform gave none.
func retryAfter(resp *http.Response, now time.Time) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if v := resp.Header.Get("x-rate-limit-reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Unix(epoch, 0).Sub(now); wait > 0 {
				return wait
			}
		}
	}
	return 0
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
