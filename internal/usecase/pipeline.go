package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
	"CryptoReplyBot/internal/scoring"
)

// State labels the pipeline's position in a run. States appear in the log so
// a run is reconstructable from its output alone.
type State string

const (
	StateIdle              State = "idle"
	StateCredentialsLoaded State = "credentials_loaded"
	StateSearched          State = "searched"
	StateFiltered          State = "filtered"
	StateReplying          State = "replying"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// The single bounded wait on a rate-limit error is capped here; anything
// longer than this is treated as fatal for the call.
const (
	maxRateLimitWait     = 15 * time.Minute
	defaultRateLimitWait = time.Minute
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source    ports.PostSource
	Poster    ports.ReplyPoster
	History   ports.ReplyHistory
	Generator ports.ReplyGenerator
	Logger    *slog.Logger

	MinScore   float64
	MaxReplies int
	ReplyDelay time.Duration

	// Sleep and Now default to the real clock; tests inject fakes.
	Sleep func(time.Duration)
	Now   func() time.Time
}

// Pipeline implements the search-score-reply workflow as a single run.
type Pipeline struct {
	source    ports.PostSource
	poster    ports.ReplyPoster
	history   ports.ReplyHistory
	generator ports.ReplyGenerator
	logger    *slog.Logger

	minScore   float64
	maxReplies int
	replyDelay time.Duration

	sleep func(time.Duration)
	now   func() time.Time

	state State
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:     deps.Source,
		poster:     deps.Poster,
		history:    deps.History,
		generator:  deps.Generator,
		logger:     deps.Logger,
		minScore:   deps.MinScore,
		maxReplies: deps.MaxReplies,
		replyDelay: deps.ReplyDelay,
		sleep:      deps.Sleep,
		now:        deps.Now,
		state:      StateIdle,
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// State reports the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes one complete bot run: search, filter by score and history,
// then reply to the surviving posts. A failure before the reply loop is
// fatal; a failure on an individual reply is logged and the loop continues.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.logger.With("run_id", uuid.NewString())

	// Credentials were validated before the pipeline was built.
	p.transition(log, StateCredentialsLoaded)

	posts, err := p.searchOnce(ctx, log)
	if err != nil {
		p.transition(log, StateFailed)
		return fmt.Errorf("search: %w", err)
	}
	p.transition(log, StateSearched)
	log.Info("search complete", "posts", len(posts))

	candidates, err := p.filter(ctx, posts)
	if err != nil {
		p.transition(log, StateFailed)
		return fmt.Errorf("filter: %w", err)
	}
	p.transition(log, StateFiltered)
	log.Info("filter complete", "candidates", len(candidates))

	p.transition(log, StateReplying)
	replied := p.replyLoop(ctx, log, candidates)

	p.transition(log, StateDone)
	log.Info("run complete", "replies_posted", replied)
	return nil
}

// searchOnce runs the platform search with a single bounded wait-and-retry
// on a rate-limit error. A second failure of any kind propagates.
func (p *Pipeline) searchOnce(ctx context.Context, log *slog.Logger) ([]domain.Post, error) {
	posts, err := p.source.Search(ctx)
	if err == nil {
		return posts, nil
	}

	var rateErr *domain.RateLimitError
	if !errors.As(err, &rateErr) {
		return nil, err
	}

	wait := boundedWait(rateErr.RetryAfter)
	log.Warn("search rate limited, retrying once", "wait", wait)
	p.sleep(wait)

	return p.source.Search(ctx)
}

// filter applies the score threshold, then drops posts already in the reply
// history. Relative post order is preserved throughout.
func (p *Pipeline) filter(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	scored := scoring.FilterByScore(posts, p.minScore)

	candidates := make([]domain.Post, 0, len(scored))
	for _, post := range scored {
		seen, err := p.history.Contains(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("history lookup for %s: %w", post.ID, err)
		}
		if seen {
			continue
		}
		candidates = append(candidates, post)
	}
	return candidates, nil
}

// replyLoop posts replies for up to maxReplies candidates, rotating personas
// round-robin. Each successful reply is recorded in history before the next
// candidate is touched. Individual failures never abort the loop.
func (p *Pipeline) replyLoop(ctx context.Context, log *slog.Logger, candidates []domain.Post) int {
	replied := 0

	for i, post := range candidates {
		if replied >= p.maxReplies {
			break
		}

		// Rotation advances with successful replies, so a failed candidate
		// does not leave a gap in the round-robin.
		voice := domain.Personas[replied%len(domain.Personas)]

		reply, err := p.generator.Generate(ctx, post, voice)
		if err != nil {
			log.Error("generate reply failed", "post_id", post.ID, "persona", voice, "error", err)
			continue
		}

		replyID, err := p.postOnce(ctx, log, post.ID, reply)
		if err != nil {
			log.Error("post reply failed", "post_id", post.ID, "persona", voice, "error", err)
			continue
		}

		rec := domain.ReplyRecord{
			PostID:    post.ID,
			ReplyID:   replyID,
			PostText:  post.Text,
			ReplyText: reply,
			RepliedAt: p.now().UTC(),
		}
		if err := p.history.Record(ctx, rec); err != nil {
			// An unrecorded reply would be re-answered next run; better to
			// stop posting than to double-reply later.
			log.Error("history record failed, stopping reply loop", "post_id", post.ID, "error", err)
			break
		}

		replied++
		log.Info("replied", "post_id", post.ID, "reply_id", replyID, "persona", voice, "author", post.AuthorUsername)

		if replied < p.maxReplies && i < len(candidates)-1 {
			p.sleep(p.replyDelay)
		}
	}

	return replied
}

// postOnce mirrors searchOnce: one bounded wait-and-retry on rate limiting,
// then the error propagates to the per-post handling above.
func (p *Pipeline) postOnce(ctx context.Context, log *slog.Logger, postID, reply string) (string, error) {
	replyID, err := p.poster.PostReply(ctx, postID, reply)
	if err == nil {
		return replyID, nil
	}

	var rateErr *domain.RateLimitError
	if !errors.As(err, &rateErr) {
		return "", err
	}

	wait := boundedWait(rateErr.RetryAfter)
	log.Warn("reply rate limited, retrying once", "post_id", postID, "wait", wait)
	p.sleep(wait)

	return p.poster.PostReply(ctx, postID, reply)
}

// transition logs at Info so a default run shows every state it passed
// through.
func (p *Pipeline) transition(log *slog.Logger, next State) {
	p.state = next
	log.Info("state", "state", next)
}

func boundedWait(hint time.Duration) time.Duration {
	if hint <= 0 {
		return defaultRateLimitWait
	}
	if hint > maxRateLimitWait {
		return maxRateLimitWait
	}
	return hint
}
