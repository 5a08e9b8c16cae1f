package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/persona"
)

type stubGenerator struct {
	reply string
	calls int
}

func (s *stubGenerator) Generate(context.Context, domain.Post, domain.Persona) (string, error) {
	s.calls++
	return s.reply, nil
}

func TestGenerateUsesModelReply(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "Quiet accumulation says more than headlines."}}]}`))
	}))
	defer server.Close()

	fallback := &stubGenerator{reply: "template reply"}
	rep := NewReplier(config.LLMConfig{Endpoint: server.URL, Model: "test", APIKey: "k"}, fallback, nil)

	got, err := rep.Generate(context.Background(), domain.Post{Text: "market is pumping"}, domain.PersonaMysteriousInsider)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Quiet accumulation says more than headlines." {
		t.Fatalf("unexpected reply %q", got)
	}
	if fallback.calls != 0 {
		t.Fatal("fallback must not run when the model succeeds")
	}
}

func TestGenerateFallsBackOnModelFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fallback := &stubGenerator{reply: "template reply"}
	rep := NewReplier(config.LLMConfig{Endpoint: server.URL, Model: "test", APIKey: "k"}, fallback, nil)

	got, err := rep.Generate(context.Background(), domain.Post{Text: "gm"}, domain.PersonaCasualFriend)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "template reply" {
		t.Fatalf("expected fallback reply, got %q", got)
	}
	if fallback.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fallback.calls)
	}
}

func TestGenerateTruncatesLongModelReply(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("alpha ", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "` + long + `"}}]}`))
	}))
	defer server.Close()

	rep := NewReplier(config.LLMConfig{Endpoint: server.URL, Model: "test", APIKey: "k"}, &stubGenerator{}, nil)

	got, err := rep.Generate(context.Background(), domain.Post{Text: "gm"}, domain.PersonaLowKeyExpert)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if utf8.RuneCountInString(got) > persona.MaxReplyLength {
		t.Fatalf("reply exceeds limit: %d chars", utf8.RuneCountInString(got))
	}
}
