package search

import (
	"context"
	"fmt"
	"log/slog"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

// StrategySource implements ports.PostSource via a registered strategy bound
// to a fixed request.
type StrategySource struct {
	registry *Registry
	platform string
	request  Request
	logger   *slog.Logger
}

var _ ports.PostSource = (*StrategySource)(nil)

// NewStrategySource binds the registry to one platform and search request.
func NewStrategySource(reg *Registry, platform string, req Request, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		platform: platform,
		request:  req,
		logger:   log,
	}
}

// Search resolves the configured platform strategy and runs it.
func (s *StrategySource) Search(ctx context.Context) ([]domain.Post, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("search registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.platform)
	if err != nil {
		return nil, err
	}

	s.debug("search", "platform", s.platform, "max_results", s.request.MaxResults)
	posts, err := strategy.Search(ctx, s.request)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.platform, err)
	}

	s.debug("search done", "platform", s.platform, "posts", len(posts))
	return posts, nil
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
