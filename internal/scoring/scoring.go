// Package scoring ranks posts by a fixed weighted engagement heuristic.
// Reshares (retweets, quotes) signal stronger engagement than likes, so they
// carry the highest weights.
package scoring

import "CryptoReplyBot/internal/domain"

const (
	weightLikes    = 1.0
	weightRetweets = 2.0
	weightReplies  = 1.5
	weightQuotes   = 2.0
)

// Score maps public metrics to a single engagement number. Pure and total:
// the same metrics always produce the same score.
func Score(m domain.Metrics) float64 {
	return weightLikes*float64(m.Likes) +
		weightRetweets*float64(m.Retweets) +
		weightReplies*float64(m.Replies) +
		weightQuotes*float64(m.Quotes)
}

// FilterByScore returns the posts whose score meets the minimum, preserving
// their original relative order.
func FilterByScore(posts []domain.Post, minScore float64) []domain.Post {
	kept := make([]domain.Post, 0, len(posts))
	for _, post := range posts {
		if Score(post.Metrics) >= minScore {
			kept = append(kept, post)
		}
	}
	return kept
}
