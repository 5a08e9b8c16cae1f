package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/infrastructure/llm"
	"CryptoReplyBot/internal/infrastructure/mastodon"
	"CryptoReplyBot/internal/infrastructure/storage"
	"CryptoReplyBot/internal/infrastructure/twitter"
	"CryptoReplyBot/internal/logging"
	"CryptoReplyBot/internal/persona"
	"CryptoReplyBot/internal/ports"
	"CryptoReplyBot/internal/search"
	"CryptoReplyBot/internal/usecase"
)

// Application wires configuration to adapters and the run pipeline.
type Application struct {
	pipeline *usecase.Pipeline
	history  ports.ReplyHistory
}

// New builds a runnable application instance. Config must be validated
// before this is called.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := search.NewRegistry()
	var poster ports.ReplyPoster

	switch cfg.Platform {
	case config.PlatformTwitter:
		client := twitter.NewClient(cfg.Twitter, nil, baseLogger.With("component", "twitter"))
		registry.Register(client)
		poster = client
	case config.PlatformMastodon:
		client := mastodon.NewClient(cfg.Mastodon, nil, baseLogger.With("component", "mastodon"))
		registry.Register(client)
		poster = client
	default:
		return nil, fmt.Errorf("platform %s is not supported", cfg.Platform)
	}

	source := search.NewStrategySource(registry, cfg.Platform, search.Request{
		Query:      cfg.Search.Query,
		MaxResults: cfg.Search.MaxResults,
		Window:     cfg.Search.Window(),
	}, baseLogger.With("component", "source"))

	history, err := openHistory(cfg.History)
	if err != nil {
		return nil, err
	}

	var generator ports.ReplyGenerator = persona.NewGenerator(rand.NewSource(time.Now().UnixNano()))
	if cfg.LLM.Enabled() {
		generator = llm.NewReplier(cfg.LLM, generator, baseLogger.With("component", "llm"))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Poster:     poster,
		History:    history,
		Generator:  generator,
		Logger:     baseLogger.With("component", "pipeline"),
		MinScore:   cfg.Scoring.MinScore,
		MaxReplies: cfg.Reply.MaxReplies,
		ReplyDelay: cfg.Reply.Delay(),
	})

	return &Application{pipeline: pipeline, history: history}, nil
}

// Run performs a single pipeline execution and releases the history store.
func (a *Application) Run(ctx context.Context) error {
	defer a.history.Close()
	return a.pipeline.Run(ctx)
}

func openHistory(cfg config.HistoryConfig) (ports.ReplyHistory, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return storage.OpenFileStore(cfg.Path)
	case config.BackendSQLite:
		return storage.OpenSQLiteStore(cfg.Path)
	case config.BackendPostgres:
		return storage.OpenPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("history backend %s is not supported", cfg.Backend)
	}
}
