package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/search"
)

// Twitter bounds max_results for recent search.
const (
	minSearchResults = 10
	maxSearchResults = 100
)

type searchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

var _ search.Strategy = (*Client)(nil)

// Search runs a recent-search call and returns posts in platform order.
func (c *Client) Search(ctx context.Context, req search.Request) ([]domain.Post, error) {
	const op = "twitter search"

	endpoint, err := url.Parse(c.baseURL + "/2/tweets/search/recent")
	if err != nil {
		return nil, fmt.Errorf("%s: parse endpoint: %w", op, err)
	}

	limit := req.MaxResults
	if limit < minSearchResults {
		limit = minSearchResults
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	query := endpoint.Query()
	query.Set("query", req.Query)
	query.Set("max_results", strconv.Itoa(limit))
	query.Set("tweet.fields", "created_at,public_metrics,author_id")
	query.Set("expansions", "author_id")
	query.Set("user.fields", "username")
	if req.Window > 0 {
		start := c.now().UTC().Add(-req.Window)
		query.Set("start_time", start.Format(time.RFC3339))
	}
	endpoint.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.searchHTTP.Do(httpReq)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp, c.now())
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	usernames := make(map[string]string, len(payload.Includes.Users))
	for _, user := range payload.Includes.Users {
		usernames[user.ID] = user.Username
	}

	posts := make([]domain.Post, 0, len(payload.Data))
	for _, tweet := range payload.Data {
		posts = append(posts, domain.Post{
			ID:             tweet.ID,
			AuthorID:       tweet.AuthorID,
			AuthorUsername: usernames[tweet.AuthorID],
			Text:           tweet.Text,
			CreatedAt:      tweet.CreatedAt,
			Metrics: domain.Metrics{
				Likes:    tweet.PublicMetrics.LikeCount,
				Retweets: tweet.PublicMetrics.RetweetCount,
				Replies:  tweet.PublicMetrics.ReplyCount,
				Quotes:   tweet.PublicMetrics.QuoteCount,
			},
		})
	}

	c.debug("search complete", "posts", len(posts))
	return posts, nil
}
