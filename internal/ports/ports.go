package ports

import (
	"context"

	"CryptoReplyBot/internal/domain"
)

// PostSource pulls candidate posts from the configured platform.
type PostSource interface {
	Search(ctx context.Context) ([]domain.Post, error)
}

// ReplyPoster publishes one reply under a target post. Returns the id of the
// newly created reply. Posting is irreversible from the bot's perspective.
type ReplyPoster interface {
	PostReply(ctx context.Context, postID, text string) (replyID string, err error)
}

// ReplyHistory is the durable set of post ids already answered. Running more
// than one bot instance against the same backing store is unsupported.
type ReplyHistory interface {
	Contains(ctx context.Context, postID string) (bool, error)
	Record(ctx context.Context, rec domain.ReplyRecord) error
	Close() error
}

// ReplyGenerator produces the reply text for a post in a given persona voice.
// Output never exceeds the platform character limit.
type ReplyGenerator interface {
	Generate(ctx context.Context, post domain.Post, persona domain.Persona) (string, error)
}
