package search

import (
	"context"
	"fmt"
	"time"

	"CryptoReplyBot/internal/domain"
)

// Request carries all parameters required to execute one platform search.
type Request struct {
	Query      string
	MaxResults int
	Window     time.Duration
}

// Strategy captures a single platform search implementation.
type Strategy interface {
	Name() string
	Search(ctx context.Context, req Request) ([]domain.Post, error)
}

// Registry keeps a mapping from platform names to their strategies.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(s Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[s.Name()] = s
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if s, ok := r.strategies[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("platform %s is not registered", name)
}
