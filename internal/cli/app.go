package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/mythwatch/mythwatch/internal/cache"
	"github.com/mythwatch/mythwatch/internal/classify"
	"github.com/mythwatch/mythwatch/internal/contextstore"
	"github.com/mythwatch/mythwatch/internal/corpus"
	"github.com/mythwatch/mythwatch/internal/faq"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/news"
	"github.com/mythwatch/mythwatch/internal/oracle"
	"github.com/mythwatch/mythwatch/internal/router"
	"github.com/mythwatch/mythwatch/internal/scenario"
	"github.com/mythwatch/mythwatch/internal/store"
	"github.com/mythwatch/mythwatch/internal/worker"
)

// loadConfig merges the config file and environment over the defaults.
// Well-known provider variables are honored when the prefixed ones are
// not set.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if cfg.News.APIKey == "" {
		cfg.News.APIKey = os.Getenv("NEWSAPI_KEY")
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	return cfg, nil
}

// app holds the wired components every command runs on.
type app struct {
	cfg        *model.Config
	corpus     *corpus.Corpus
	similarity *oracle.Similarity
	claims     *classify.Classifier
	scenarios  *scenario.Classifier
	faqs       *faq.Matcher
	router     *router.Router
	summarizer oracle.Summarizer
	logdb      *store.ConversationLog
}

// buildApp wires the full application from configuration. The returned
// cleanup closes the conversation log.
func buildApp(ctx context.Context, cfg *model.Config) (*app, func(), error) {
	knowledge, err := corpus.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	oracleClient, err := oracle.NewOpenAIClient(cfg.Oracle)
	if err != nil {
		return nil, nil, fmt.Errorf("create oracle client: %w", err)
	}

	var vectors cache.VectorCache = cache.NewMemoryCache()
	if cfg.Oracle.CacheDir != "" {
		vectors = cache.NewLayeredCache(cfg.Oracle.CacheDir)
	}
	similarity := oracle.NewSimilarity(oracleClient, vectors)

	// Entailment is optional; without it the classifier degrades to its
	// remaining signals.
	var entailer oracle.Entailer
	if cfg.Oracle.NLIBaseURL != "" {
		entailer, err = oracle.NewNLIClient(cfg.Oracle)
		if err != nil {
			return nil, nil, fmt.Errorf("create NLI client: %w", err)
		}
	}

	claims := classify.New(knowledge, similarity, entailer, cfg.Thresholds)
	scenarios := scenario.New(knowledge, similarity, claims, cfg.Thresholds)
	faqs := faq.New(knowledge, similarity)

	contexts, err := contextstore.New(cfg.Context)
	if err != nil {
		return nil, nil, fmt.Errorf("create context store: %w", err)
	}

	var recorder store.Recorder = store.NopRecorder{}
	var logdb *store.ConversationLog
	if cfg.Store.Enabled {
		logdb, err = store.Open(cfg.Store.Path, version)
		if err != nil {
			return nil, nil, fmt.Errorf("open conversation log: %w", err)
		}
		recorder = logdb
	}

	fetcher := news.NewFetcher(cfg.News, cfg.HTTP)

	r := router.New(claims, scenarios, faqs, fetcher, contexts, recorder, oracleClient, cfg.Thresholds)

	// Corpus embeddings are cheap to precompute and make the first
	// interactive request fast.
	go worker.Warm(ctx, similarity, knowledge.AllTexts(), 4)

	cleanup := func() {
		if logdb != nil {
			if err := logdb.Close(); err != nil {
				log.Warn().Err(err).Msg("closing conversation log failed")
			}
		}
	}

	return &app{
		cfg:        cfg,
		corpus:     knowledge,
		similarity: similarity,
		claims:     claims,
		scenarios:  scenarios,
		faqs:       faqs,
		router:     r,
		summarizer: oracleClient,
		logdb:      logdb,
	}, cleanup, nil
}
