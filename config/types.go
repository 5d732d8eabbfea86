package config

import (
	"time"

	"news-analyzer/relevance"
	"news-analyzer/topic"
)

// Config aggregates all engine configuration blocks.
type Config struct {
	Sentiment SentimentConfig `json:"sentiment"`
	Relevance RelevanceConfig `json:"relevance"`
	Topics    TopicsConfig    `json:"topics"`
	Batch     BatchConfig     `json:"batch"`
	Metrics   MetricsConfig   `json:"metrics"`
	Logging   LoggingConfig   `json:"logging"`
}

type SentimentConfig struct {
	StrongThreshold   float64 `json:"strong_threshold" env:"SENTIMENT_STRONG_THRESHOLD" default:"0.3"`
	ModerateThreshold float64 `json:"moderate_threshold" env:"SENTIMENT_MODERATE_THRESHOLD" default:"0.1"`
	ModerateFactor    float64 `json:"moderate_factor" env:"SENTIMENT_MODERATE_FACTOR" default:"0.7"`
	TitleWeight       float64 `json:"title_weight" env:"SENTIMENT_TITLE_WEIGHT" default:"1.0"`
	Preparer          string  `json:"preparer" env:"SENTIMENT_PREPARER" default:"raw"`
}

type RelevanceConfig struct {
	// Keywords is the resolved keyword set after env and file overrides.
	Keywords     []string `json:"keywords" env:"RELEVANCE_KEYWORDS"`
	KeywordsFile string   `json:"keywords_file" env:"RELEVANCE_KEYWORDS_FILE"`
	Saturation   int      `json:"saturation" env:"RELEVANCE_SATURATION" default:"10"`
	Threshold    float64  `json:"threshold" env:"RELEVANCE_THRESHOLD" default:"0.1"`
}

type TopicsConfig struct {
	// Table is the resolved per-category keyword tiers after file overrides.
	Table       map[string]topic.Keywords `json:"table"`
	TableFile   string                    `json:"table_file" env:"TOPIC_TABLE_FILE"`
	Weights     topic.Weights             `json:"weights"`
	TitleWeight float64                   `json:"title_weight" env:"TOPIC_TITLE_WEIGHT" default:"1.0"`
	Precedence  []string                  `json:"precedence" env:"TOPIC_PRECEDENCE"`
}

type BatchConfig struct {
	ChunkSize   int           `json:"chunk_size" env:"BATCH_CHUNK_SIZE" default:"40"`
	Concurrency int           `json:"concurrency" env:"BATCH_CONCURRENCY" default:"4"`
	// Timeout is the wall-clock budget for one batch; zero disables it.
	Timeout time.Duration `json:"timeout" env:"BATCH_TIMEOUT" default:"0s"`
}

type MetricsConfig struct {
	Enabled        bool          `json:"enabled" env:"METRICS_ENABLED" default:"false"`
	Port           int           `json:"port" env:"METRICS_PORT" default:"9201"`
	Path           string        `json:"path" env:"METRICS_PATH" default:"/metrics"`
	UpdateInterval time.Duration `json:"update_interval" env:"METRICS_UPDATE_INTERVAL" default:"10s"`
}

type LoggingConfig struct {
	ServiceName string `json:"service_name" env:"LOG_SERVICE_NAME" default:"news-analyzer"`
}

func defaultConfig() *Config {
	return &Config{
		Sentiment: SentimentConfig{
			StrongThreshold:   0.3,
			ModerateThreshold: 0.1,
			ModerateFactor:    0.7,
			TitleWeight:       1.0,
			Preparer:          "raw",
		},
		Relevance: RelevanceConfig{
			Keywords:   relevance.DefaultKeywords(),
			Saturation: relevance.DefaultSaturation,
			Threshold:  relevance.DefaultThreshold,
		},
		Topics: TopicsConfig{
			Table:       topic.DefaultKeywordTable(),
			Weights:     topic.DefaultWeights(),
			TitleWeight: 1.0,
		},
		Batch: BatchConfig{
			ChunkSize:   40,
			Concurrency: 4,
			Timeout:     0,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			Port:           9201,
			Path:           "/metrics",
			UpdateInterval: 10 * time.Second,
		},
		Logging: LoggingConfig{
			ServiceName: "news-analyzer",
		},
	}
}
