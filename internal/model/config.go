package model

import "time"

// Config is the complete runtime configuration. Values merge in the usual
// hierarchy: CLI flags over MYTHWATCH_* environment variables over the
// config file over DefaultConfig.
type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Context    ContextConfig   `yaml:"context" mapstructure:"context"`
	Oracle     OracleConfig    `yaml:"oracle" mapstructure:"oracle"`
	News       NewsConfig      `yaml:"news" mapstructure:"news"`
	Store      StoreConfig     `yaml:"store" mapstructure:"store"`
	HTTP       HTTPConfig      `yaml:"http" mapstructure:"http"`
	Telegram   TelegramConfig  `yaml:"telegram" mapstructure:"telegram"`
	Output     OutputConfig    `yaml:"output" mapstructure:"output"`
}

// ThresholdConfig exposes the similarity cutoffs that were tuned
// empirically against the curated corpus.
type ThresholdConfig struct {
	// MisinfoPrototype triggers the misinformation verdict when a claim's
	// similarity to any curated prototype exceeds it.
	MisinfoPrototype float64 `yaml:"misinfo_prototype" mapstructure:"misinfo_prototype"`
	// Neutral is the NLI neutral-probability floor for the Uncertain verdict.
	Neutral float64 `yaml:"neutral" mapstructure:"neutral"`
	// ReferenceFloor is the minimum average reference similarity below which
	// the fallback verdict becomes Requires Expert Review.
	ReferenceFloor float64 `yaml:"reference_floor" mapstructure:"reference_floor"`
	// ScenarioMatch accepts a semantic scenario match.
	ScenarioMatch float64 `yaml:"scenario_match" mapstructure:"scenario_match"`
	// ScenarioHigh marks a high-confidence scenario match.
	ScenarioHigh float64 `yaml:"scenario_high" mapstructure:"scenario_high"`
	// FAQMatch accepts an FAQ answer.
	FAQMatch float64 `yaml:"faq_match" mapstructure:"faq_match"`
}

// ContextConfig controls the per-user follow-up memory.
type ContextConfig struct {
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Backend string        `yaml:"backend" mapstructure:"backend"` // "memory" or "redis"
	Redis   string        `yaml:"redis" mapstructure:"redis"`     // redis address when backend=redis
}

// OracleConfig configures the embedding, entailment and summarization
// services.
type OracleConfig struct {
	APIKey         string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string        `yaml:"base_url" mapstructure:"base_url"`
	EmbeddingModel string        `yaml:"embedding_model" mapstructure:"embedding_model"`
	NLIBaseURL     string        `yaml:"nli_base_url" mapstructure:"nli_base_url"`
	NLIModel       string        `yaml:"nli_model" mapstructure:"nli_model"`
	SummaryModel   string        `yaml:"summary_model" mapstructure:"summary_model"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RatePerSecond  float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	CacheDir       string        `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// NewsConfig configures headline fetching.
type NewsConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Topic    string `yaml:"topic" mapstructure:"topic"`
	PageSize int    `yaml:"page_size" mapstructure:"page_size"`
}

// StoreConfig configures the conversation log database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// HTTPConfig configures the API server and outbound requests.
type HTTPConfig struct {
	Addr      string `yaml:"addr" mapstructure:"addr"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// TelegramConfig configures the bot transport. The token is normally
// supplied via the TELEGRAM_BOT_TOKEN environment variable.
type TelegramConfig struct {
	Token string `yaml:"token" mapstructure:"token"`
}

// OutputConfig controls logging verbosity.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			MisinfoPrototype: 0.75,
			Neutral:          0.45,
			ReferenceFloor:   0.25,
			ScenarioMatch:    0.65,
			ScenarioHigh:     0.80,
			FAQMatch:         0.65,
		},
		Context: ContextConfig{
			TTL:     5 * time.Minute,
			Backend: "memory",
		},
		Oracle: OracleConfig{
			EmbeddingModel: "text-embedding-3-small",
			NLIModel:       "bart-large-mnli",
			SummaryModel:   "gpt-4o-mini",
			Timeout:        30 * time.Second,
			RatePerSecond:  5,
		},
		News: NewsConfig{
			BaseURL:  "https://newsapi.org/v2",
			Topic:    "mpox",
			PageSize: 5,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    "mythwatch.db",
		},
		HTTP: HTTPConfig{
			Addr:      ":7860",
			UserAgent: "Mythwatch/0.1 (+https://github.com/mythwatch/mythwatch)",
		},
	}
}
