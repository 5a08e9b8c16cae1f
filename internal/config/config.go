package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"CryptoReplyBot/internal/domain"
)

const (
	configPathEnv = "CRYPTO_REPLY_BOT_CONFIG"

	twitterAPIKeyEnv       = "TWITTER_API_KEY"
	twitterAPISecretEnv    = "TWITTER_API_SECRET"
	twitterBearerTokenEnv  = "TWITTER_BEARER_TOKEN"
	twitterAccessTokenEnv  = "TWITTER_ACCESS_TOKEN"
	twitterAccessSecretEnv = "TWITTER_ACCESS_SECRET"

	mastodonServerEnv = "MASTODON_SERVER"
	mastodonTokenEnv  = "MASTODON_ACCESS_TOKEN"

	historyDSNEnv = "REPLY_HISTORY_DSN"
	llmAPIKeyEnv  = "LLM_API_KEY"
)

// Platform names accepted in the platform setting.
const (
	PlatformTwitter  = "twitter"
	PlatformMastodon = "mastodon"
)

// History backend names accepted in the history.backend setting.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds every setting required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Platform string         `yaml:"platform"`
	Search   SearchConfig   `yaml:"search"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Reply    ReplyConfig    `yaml:"reply"`
	History  HistoryConfig  `yaml:"history"`
	Mastodon MastodonConfig `yaml:"mastodon"`
	LLM      LLMConfig      `yaml:"llm"`

	// Twitter credentials come from the environment only; they are never
	// read from or written to the YAML file.
	Twitter TwitterConfig `yaml:"-"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig describes the platform search call.
type SearchConfig struct {
	Query       string `yaml:"query"`
	MaxResults  int    `yaml:"maxResults"`
	WindowHours int    `yaml:"windowHours"`
}

// Window returns the search lookback window as a duration.
func (s SearchConfig) Window() time.Duration {
	return time.Duration(s.WindowHours) * time.Hour
}

// ScoringConfig holds the engagement score cutoff.
type ScoringConfig struct {
	MinScore float64 `yaml:"minScore"`
}

// ReplyConfig bounds the reply loop.
type ReplyConfig struct {
	MaxReplies   int `yaml:"maxReplies"`
	DelaySeconds int `yaml:"delaySeconds"`
}

// Delay returns the pause between consecutive reply posts.
func (r ReplyConfig) Delay() time.Duration {
	return time.Duration(r.DelaySeconds) * time.Second
}

// HistoryConfig selects and configures the reply-history backend.
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
}

// TwitterConfig carries the five platform secrets.
type TwitterConfig struct {
	APIKey       string
	APISecret    string
	BearerToken  string
	AccessToken  string
	AccessSecret string
}

// MastodonConfig wires the alternative platform strategy.
type MastodonConfig struct {
	Server      string `yaml:"server"`
	AccessToken string `yaml:"-"`
}

// LLMConfig defines the optional generated-reply integration. The bot falls
// back to template replies whenever this is unset or the call fails.
type LLMConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"`
}

// Enabled reports whether the LLM generator should be wired in.
func (l LLMConfig) Enabled() bool {
	return l.Endpoint != "" && l.Model != "" && l.APIKey != ""
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnv()
	return cfg
}

// Validate fails fast, before any network call, when required secrets or
// backend settings are absent. All missing variables are reported at once.
func (c Config) Validate() error {
	var missing []string

	switch c.Platform {
	case PlatformTwitter:
		checks := []struct {
			name, value string
		}{
			{twitterAPIKeyEnv, c.Twitter.APIKey},
			{twitterAPISecretEnv, c.Twitter.APISecret},
			{twitterBearerTokenEnv, c.Twitter.BearerToken},
			{twitterAccessTokenEnv, c.Twitter.AccessToken},
			{twitterAccessSecretEnv, c.Twitter.AccessSecret},
		}
		for _, chk := range checks {
			if chk.value == "" {
				missing = append(missing, chk.name)
			}
		}
	case PlatformMastodon:
		if c.Mastodon.Server == "" {
			missing = append(missing, mastodonServerEnv)
		}
		if c.Mastodon.AccessToken == "" {
			missing = append(missing, mastodonTokenEnv)
		}
	default:
		missing = append(missing, "platform ("+c.Platform+" is not supported)")
	}

	if (c.History.Backend == BackendPostgres) && c.History.DSN == "" {
		missing = append(missing, historyDSNEnv)
	}

	if len(missing) > 0 {
		return &domain.ConfigurationError{Missing: missing}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Twitter.APIKey = os.Getenv(twitterAPIKeyEnv)
	c.Twitter.APISecret = os.Getenv(twitterAPISecretEnv)
	c.Twitter.BearerToken = os.Getenv(twitterBearerTokenEnv)
	c.Twitter.AccessToken = os.Getenv(twitterAccessTokenEnv)
	c.Twitter.AccessSecret = os.Getenv(twitterAccessSecretEnv)

	if v := os.Getenv(mastodonServerEnv); v != "" {
		c.Mastodon.Server = v
	}
	c.Mastodon.AccessToken = os.Getenv(mastodonTokenEnv)

	if v := os.Getenv(historyDSNEnv); v != "" {
		c.History.DSN = v
	}
	c.LLM.APIKey = os.Getenv(llmAPIKeyEnv)
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Platform != "" {
		base.Platform = override.Platform
	}

	if override.Search.Query != "" {
		base.Search.Query = override.Search.Query
	}
	if override.Search.MaxResults > 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.WindowHours > 0 {
		base.Search.WindowHours = override.Search.WindowHours
	}

	if override.Scoring.MinScore > 0 {
		base.Scoring.MinScore = override.Scoring.MinScore
	}

	if override.Reply.MaxReplies > 0 {
		base.Reply.MaxReplies = override.Reply.MaxReplies
	}
	if override.Reply.DelaySeconds > 0 {
		base.Reply.DelaySeconds = override.Reply.DelaySeconds
	}

	if override.History.Backend != "" {
		base.History.Backend = override.History.Backend
	}
	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}
	if override.History.DSN != "" {
		base.History.DSN = override.History.DSN
	}

	if override.Mastodon.Server != "" {
		base.Mastodon.Server = override.Mastodon.Server
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Platform: PlatformTwitter,
		Search: SearchConfig{
			Query:       "(crypto OR cryptocurrency OR bitcoin OR ethereum OR blockchain OR defi OR nft OR airdrop OR staking) -is:retweet -is:reply lang:en",
			MaxResults:  30,
			WindowHours: 24,
		},
		Scoring: ScoringConfig{MinScore: 100},
		Reply:   ReplyConfig{MaxReplies: 5, DelaySeconds: 30},
		History: HistoryConfig{Backend: BackendFile, Path: "reply_history.jsonl"},
		LLM: LLMConfig{
			Endpoint: "",
			Model:    "gpt-4o-mini",
		},
	}
}
