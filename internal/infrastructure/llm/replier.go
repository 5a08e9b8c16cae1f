// Package llm implements the optional generated-reply path against an
// OpenAI-compatible chat completions endpoint. Any failure falls back to the
// template generator, so the reply loop never dies on the model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/persona"
	"CryptoReplyBot/internal/ports"
)

var personaPrompts = map[domain.Persona]string{
	domain.PersonaMysteriousInsider: "You are a crypto insider replying to posts with cryptic, professional insider hints. Use subtle hints of deeper knowledge. Avoid heavy punctuation. Keep replies under 250 characters with short, clear sentences.",
	domain.PersonaLowKeyExpert:      "You are a casual crypto expert replying to posts with conversational, punchy insights. Be empathetic but hint at insider knowledge. Avoid heavy punctuation. Keep replies under 250 characters with short, clear sentences.",
	domain.PersonaCasualFriend:      "You are a friendly crypto enthusiast replying to posts with relatable, light humor. Use easy language that sparks curiosity. Avoid heavy punctuation. Keep replies under 250 characters with short, clear sentences.",
}

// Replier generates replies via a chat model, with a mandatory fallback
// generator used whenever the model call fails or returns nothing usable.
type Replier struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	fallback   ports.ReplyGenerator
	logger     *slog.Logger
}

var _ ports.ReplyGenerator = (*Replier)(nil)

// NewReplier builds a replier from configuration. fallback must not be nil.
func NewReplier(cfg config.LLMConfig, fallback ports.ReplyGenerator, logger *slog.Logger) *Replier {
	return &Replier{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		fallback:   fallback,
		logger:     logger,
	}
}

// Generate asks the model for a persona reply and enforces the platform
// character limit on the result. On any error the fallback generator runs.
func (r *Replier) Generate(ctx context.Context, post domain.Post, p domain.Persona) (string, error) {
	reply, err := r.complete(ctx, post, p)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("llm generation failed, using templates", "error", err)
		}
		return r.fallback.Generate(ctx, post, p)
	}
	return persona.Truncate(reply, persona.MaxReplyLength), nil
}

func (r *Replier) complete(ctx context.Context, post domain.Post, p domain.Persona) (string, error) {
	systemPrompt, ok := personaPrompts[p]
	if !ok {
		systemPrompt = personaPrompts[domain.PersonaMysteriousInsider]
	}

	category := persona.DetectCategory(post.Text)
	userPrompt := fmt.Sprintf("Post: %s\n\nContext: %s\n\nGenerate a reply:", post.Text, category)

	body, err := json.Marshal(map[string]any{
		"model": r.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"max_tokens":  100,
		"temperature": 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("model error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("model returned empty reply")
	}
	return reply, nil
}
