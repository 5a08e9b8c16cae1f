package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConfigurationError reports missing or empty required settings. It is raised
// before any network call is attempted and is fatal for the run.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: missing %s", strings.Join(e.Missing, ", "))
}

// AuthError signals that the platform rejected our credentials. Fatal for the
// call in which it occurs.
type AuthError struct {
	Op     string
	Status string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication rejected (%s)", e.Op, e.Status)
}

// RateLimitError signals platform throttling. RetryAfter is zero when the
// platform gave no guidance.
type RateLimitError struct {
	Op         string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited, retry after %s", e.Op, e.RetryAfter)
	}
	return fmt.Sprintf("%s: rate limited", e.Op)
}

// DuplicateContentError signals that the platform refused a reply because its
// text was too close to one posted recently.
type DuplicateContentError struct {
	PostID string
}

func (e *DuplicateContentError) Error() string {
	return fmt.Sprintf("reply to %s rejected as duplicate content", e.PostID)
}

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
