package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig builds the configuration from defaults, environment
// variable overrides, and optional YAML table files.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := loadTables(config); err != nil {
		return nil, fmt.Errorf("failed to load table files: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	if err := loadSentimentConfig(&config.Sentiment); err != nil {
		return fmt.Errorf("failed to load sentiment config: %w", err)
	}

	if err := loadRelevanceConfig(&config.Relevance); err != nil {
		return fmt.Errorf("failed to load relevance config: %w", err)
	}

	if err := loadTopicsConfig(&config.Topics); err != nil {
		return fmt.Errorf("failed to load topics config: %w", err)
	}

	if err := loadBatchConfig(&config.Batch); err != nil {
		return fmt.Errorf("failed to load batch config: %w", err)
	}

	if err := loadMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("failed to load metrics config: %w", err)
	}

	if name := os.Getenv("LOG_SERVICE_NAME"); name != "" {
		config.Logging.ServiceName = name
	}

	return nil
}

func loadSentimentConfig(cfg *SentimentConfig) error {
	var err error

	if cfg.StrongThreshold, err = parseFloatEnv("SENTIMENT_STRONG_THRESHOLD", cfg.StrongThreshold); err != nil {
		return err
	}

	if cfg.ModerateThreshold, err = parseFloatEnv("SENTIMENT_MODERATE_THRESHOLD", cfg.ModerateThreshold); err != nil {
		return err
	}

	if cfg.ModerateFactor, err = parseFloatEnv("SENTIMENT_MODERATE_FACTOR", cfg.ModerateFactor); err != nil {
		return err
	}

	if cfg.TitleWeight, err = parseFloatEnv("SENTIMENT_TITLE_WEIGHT", cfg.TitleWeight); err != nil {
		return err
	}

	if preparer := os.Getenv("SENTIMENT_PREPARER"); preparer != "" {
		cfg.Preparer = preparer
	}

	return nil
}

func loadRelevanceConfig(cfg *RelevanceConfig) error {
	var err error

	if keywords := os.Getenv("RELEVANCE_KEYWORDS"); keywords != "" {
		cfg.Keywords = splitList(keywords)
	}

	if file := os.Getenv("RELEVANCE_KEYWORDS_FILE"); file != "" {
		cfg.KeywordsFile = file
	}

	if cfg.Saturation, err = parseIntEnv("RELEVANCE_SATURATION", cfg.Saturation); err != nil {
		return err
	}

	if cfg.Threshold, err = parseFloatEnv("RELEVANCE_THRESHOLD", cfg.Threshold); err != nil {
		return err
	}

	return nil
}

func loadTopicsConfig(cfg *TopicsConfig) error {
	var err error

	if file := os.Getenv("TOPIC_TABLE_FILE"); file != "" {
		cfg.TableFile = file
	}

	if cfg.Weights.High, err = parseFloatEnv("TOPIC_WEIGHT_HIGH", cfg.Weights.High); err != nil {
		return err
	}

	if cfg.Weights.Medium, err = parseFloatEnv("TOPIC_WEIGHT_MEDIUM", cfg.Weights.Medium); err != nil {
		return err
	}

	if cfg.Weights.Low, err = parseFloatEnv("TOPIC_WEIGHT_LOW", cfg.Weights.Low); err != nil {
		return err
	}

	if cfg.TitleWeight, err = parseFloatEnv("TOPIC_TITLE_WEIGHT", cfg.TitleWeight); err != nil {
		return err
	}

	if precedence := os.Getenv("TOPIC_PRECEDENCE"); precedence != "" {
		cfg.Precedence = splitList(precedence)
	}

	return nil
}

func loadBatchConfig(cfg *BatchConfig) error {
	var err error

	if cfg.ChunkSize, err = parseIntEnv("BATCH_CHUNK_SIZE", cfg.ChunkSize); err != nil {
		return err
	}

	if cfg.Concurrency, err = parseIntEnv("BATCH_CONCURRENCY", cfg.Concurrency); err != nil {
		return err
	}

	if cfg.Timeout, err = parseDurationEnv("BATCH_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	return nil
}

func loadMetricsConfig(cfg *MetricsConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("METRICS_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if cfg.Port, err = parseIntEnv("METRICS_PORT", cfg.Port); err != nil {
		return err
	}

	if path := os.Getenv("METRICS_PATH"); path != "" {
		cfg.Path = path
	}

	if cfg.UpdateInterval, err = parseDurationEnv("METRICS_UPDATE_INTERVAL", cfg.UpdateInterval); err != nil {
		return err
	}

	return nil
}

// loadTables applies YAML file overrides after env loading so that a
// file named via the environment wins over the built-in tables.
func loadTables(config *Config) error {
	if config.Relevance.KeywordsFile != "" {
		keywords, err := LoadRelevanceKeywords(config.Relevance.KeywordsFile)
		if err != nil {
			return err
		}
		config.Relevance.Keywords = keywords
	}

	if config.Topics.TableFile != "" {
		table, weights, err := LoadTopicTable(config.Topics.TableFile)
		if err != nil {
			return err
		}
		config.Topics.Table = table
		if weights != nil {
			config.Topics.Weights = *weights
		}
	}

	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return i, nil
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return b, nil
	}
	return defaultValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return f, nil
	}
	return defaultValue, nil
}
