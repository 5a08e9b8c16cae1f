package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

type createTweetRequest struct {
	Text  string `json:"text"`
	Reply struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply"`
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

var _ ports.ReplyPoster = (*Client)(nil)

// PostReply creates a reply tweet under postID. The new tweet is public and
// irreversible from the bot's perspective.
func (c *Client) PostReply(ctx context.Context, postID, text string) (string, error) {
	const op = "twitter post reply"

	var payload createTweetRequest
	payload.Text = text
	payload.Reply.InReplyToTweetID = postID

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.postHTTP.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if strings.Contains(strings.ToLower(string(detail)), "duplicate") {
			return "", &domain.DuplicateContentError{PostID: postID}
		}
		return "", &domain.AuthError{Op: op, Status: resp.Status}
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", statusError(op, resp, c.now())
	}

	var created createTweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if created.Data.ID == "" {
		return "", fmt.Errorf("%s: response carried no tweet id", op)
	}

	c.debug("reply posted", "post_id", postID, "reply_id", created.Data.ID)
	return created.Data.ID, nil
}
