package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"CryptoReplyBot/internal/domain"
)

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_BEARER_TOKEN",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET",
		"MASTODON_SERVER", "MASTODON_ACCESS_TOKEN",
		"REPLY_HISTORY_DSN", "LLM_API_KEY", "CRYPTO_REPLY_BOT_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func setTwitterSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("TWITTER_API_KEY", "k")
	t.Setenv("TWITTER_API_SECRET", "s")
	t.Setenv("TWITTER_BEARER_TOKEN", "b")
	t.Setenv("TWITTER_ACCESS_TOKEN", "at")
	t.Setenv("TWITTER_ACCESS_SECRET", "as")
}

func TestValidateReportsEveryMissingSecret(t *testing.T) {
	clearSecrets(t)
	t.Setenv("TWITTER_API_KEY", "present")

	cfg := Load()
	err := cfg.Validate()

	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}

	want := []string{
		"TWITTER_API_SECRET", "TWITTER_BEARER_TOKEN",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET",
	}
	if len(confErr.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", confErr.Missing, want)
	}
	for i := range want {
		if confErr.Missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", confErr.Missing, want)
		}
	}
	if !strings.Contains(err.Error(), "TWITTER_BEARER_TOKEN") {
		t.Fatalf("error does not name the variable: %v", err)
	}
}

func TestValidatePassesWithAllSecrets(t *testing.T) {
	clearSecrets(t)
	setTwitterSecrets(t)

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRequiresDSNForPostgresBackend(t *testing.T) {
	clearSecrets(t)
	setTwitterSecrets(t)

	cfg := Load()
	cfg.History.Backend = BackendPostgres
	cfg.History.DSN = ""

	err := cfg.Validate()
	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearSecrets(t)

	cfg := Load()
	if cfg.Platform != PlatformTwitter {
		t.Fatalf("default platform = %s", cfg.Platform)
	}
	if cfg.Scoring.MinScore != 100 {
		t.Fatalf("default min score = %f", cfg.Scoring.MinScore)
	}
	if cfg.Reply.MaxReplies != 5 || cfg.Reply.DelaySeconds != 30 {
		t.Fatalf("default reply config = %+v", cfg.Reply)
	}
	if cfg.History.Backend != BackendFile {
		t.Fatalf("default history backend = %s", cfg.History.Backend)
	}
	if !strings.Contains(cfg.Search.Query, "crypto") {
		t.Fatalf("default query lost its keywords: %s", cfg.Search.Query)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	clearSecrets(t)

	path := filepath.Join(t.TempDir(), "bot.yaml")
	yamlBody := `
scoring:
  minScore: 250
reply:
  maxReplies: 2
history:
  backend: sqlite
  path: bot.db
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CRYPTO_REPLY_BOT_CONFIG", path)

	cfg := Load()
	if cfg.Scoring.MinScore != 250 {
		t.Fatalf("file min score not applied: %f", cfg.Scoring.MinScore)
	}
	if cfg.Reply.MaxReplies != 2 {
		t.Fatalf("file max replies not applied: %d", cfg.Reply.MaxReplies)
	}
	if cfg.History.Backend != BackendSQLite || cfg.History.Path != "bot.db" {
		t.Fatalf("file history config not applied: %+v", cfg.History)
	}
	// Untouched settings keep their defaults.
	if cfg.Reply.DelaySeconds != 30 {
		t.Fatalf("unset delay lost its default: %d", cfg.Reply.DelaySeconds)
	}
}

func TestEnvOverridesFillCredentials(t *testing.T) {
	clearSecrets(t)
	setTwitterSecrets(t)

	cfg := Load()
	if cfg.Twitter.APIKey != "k" || cfg.Twitter.AccessSecret != "as" {
		t.Fatalf("env credentials not applied: %+v", cfg.Twitter)
	}
}
