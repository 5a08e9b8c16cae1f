// Package mastodon implements the alternative platform strategy. Mastodon
// status content arrives as HTML fragments, so post text is reduced to plain
// text before keyword matching.
package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
	"CryptoReplyBot/internal/search"
)

// Client talks to one Mastodon server with a user access token.
type Client struct {
	server      string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ search.Strategy = (*Client)(nil)
var _ ports.ReplyPoster = (*Client)(nil)

// NewClient wires a server base URL and token; a nil httpClient gets a
// default with a request timeout.
func NewClient(cfg config.MastodonConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		server:      strings.TrimSuffix(cfg.Server, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Name identifies the strategy inside the search registry.
func (c *Client) Name() string {
	return config.PlatformMastodon
}

type status struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	FavouritesCount int       `json:"favourites_count"`
	ReblogsCount    int       `json:"reblogs_count"`
	RepliesCount    int       `json:"replies_count"`
	Account         struct {
		ID   string `json:"id"`
		Acct string `json:"acct"`
	} `json:"account"`
}

type searchResponse struct {
	Statuses []status `json:"statuses"`
}

// Search queries statuses on the configured server. Favourites map to likes
// and reblogs to retweets; Mastodon has no quote counter, so quotes stay 0.
func (c *Client) Search(ctx context.Context, req search.Request) ([]domain.Post, error) {
	const op = "mastodon search"

	endpoint, err := url.Parse(c.server + "/api/v2/search")
	if err != nil {
		return nil, fmt.Errorf("%s: parse endpoint: %w", op, err)
	}

	query := endpoint.Query()
	query.Set("q", req.Query)
	query.Set("type", "statuses")
	if req.MaxResults > 0 {
		query.Set("limit", strconv.Itoa(req.MaxResults))
	}
	endpoint.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	posts := make([]domain.Post, 0, len(payload.Statuses))
	for _, st := range payload.Statuses {
		posts = append(posts, domain.Post{
			ID:             st.ID,
			AuthorID:       st.Account.ID,
			AuthorUsername: st.Account.Acct,
			Text:           stripHTML(st.Content),
			CreatedAt:      st.CreatedAt,
			Metrics: domain.Metrics{
				Likes:    st.FavouritesCount,
				Retweets: st.ReblogsCount,
				Replies:  st.RepliesCount,
			},
		})
	}

	return posts, nil
}

// PostReply creates a status in reply to postID.
func (c *Client) PostReply(ctx context.Context, postID, text string) (string, error) {
	const op = "mastodon post reply"

	body, err := json.Marshal(map[string]string{
		"status":         text,
		"in_reply_to_id": postID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api/v1/statuses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(op, resp); err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%s: response carried no status id", op)
	}

	if c.logger != nil {
		c.logger.Debug("reply posted", "post_id", postID, "reply_id", created.ID)
	}
	return created.ID, nil
}

func (c *Client) checkStatus(op string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Op: op, Status: resp.Status}
	case resp.StatusCode == http.StatusTooManyRequests:
		var wait time.Duration
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
		return &domain.RateLimitError{Op: op, RetryAfter: wait}
	default:
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
}

// stripHTML flattens a status content fragment to plain text.
func stripHTML(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	return strings.TrimSpace(doc.Text())
}
