package persona

import (
	"context"
	"math/rand"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

// MaxReplyLength is the platform character limit for a single reply.
const MaxReplyLength = 280

// Generator draws templated replies. Pure except for the randomness source,
// which is injected so tests can pin a seed.
type Generator struct {
	rng *rand.Rand
}

var _ ports.ReplyGenerator = (*Generator)(nil)

// NewGenerator builds a generator around the provided source. Callers seed
// it from the clock in production; tests pass a fixed seed to pin selection.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate detects the post's category and picks one template from the
// persona's pool for it. Never fails and never exceeds MaxReplyLength.
func (g *Generator) Generate(_ context.Context, post domain.Post, p domain.Persona) (string, error) {
	category := DetectCategory(post.Text)
	pool := TemplatesFor(category, p)

	reply := pool[g.rng.Intn(len(pool))]
	return Truncate(reply, MaxReplyLength), nil
}

// Truncate caps text at limit runes, marking the cut with an ellipsis.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
