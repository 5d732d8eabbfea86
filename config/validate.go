package config

import (
	"fmt"
	"strings"

	"news-analyzer/domain"
	"news-analyzer/sentiment"
)

func validateConfig(config *Config) error {
	s := config.Sentiment
	thresholds := sentiment.Thresholds{
		Strong:         s.StrongThreshold,
		Moderate:       s.ModerateThreshold,
		ModerateFactor: s.ModerateFactor,
	}
	if err := thresholds.Validate(); err != nil {
		return err
	}

	if s.TitleWeight <= 0 {
		return fmt.Errorf("sentiment title weight must be positive: %f", s.TitleWeight)
	}

	if _, ok := sentiment.NewPreparer(s.Preparer); !ok {
		return fmt.Errorf("unknown sentiment preparer: %s", s.Preparer)
	}

	if len(config.Relevance.Keywords) == 0 {
		return fmt.Errorf("relevance keyword set cannot be empty")
	}

	for i, kw := range config.Relevance.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("relevance keyword at index %d cannot be empty", i)
		}
	}

	if config.Relevance.Saturation <= 0 {
		return fmt.Errorf("relevance saturation must be positive: %d", config.Relevance.Saturation)
	}

	if config.Relevance.Threshold < 0 || config.Relevance.Threshold > 1 {
		return fmt.Errorf("relevance threshold must be in [0, 1]: %f", config.Relevance.Threshold)
	}

	if err := config.Topics.Weights.Validate(); err != nil {
		return err
	}

	if config.Topics.TitleWeight <= 0 {
		return fmt.Errorf("topic title weight must be positive: %f", config.Topics.TitleWeight)
	}

	if len(config.Topics.Table) == 0 {
		return fmt.Errorf("topic keyword table cannot be empty")
	}

	for name := range config.Topics.Table {
		if !domain.IsValidCategory(domain.Category(name)) {
			return fmt.Errorf("unknown category in topic table: %s", name)
		}
	}

	if len(config.Topics.Precedence) > 0 {
		if len(config.Topics.Precedence) != len(domain.Categories()) {
			return fmt.Errorf("topic precedence must list all %d categories, got %d",
				len(domain.Categories()), len(config.Topics.Precedence))
		}
		seen := make(map[string]struct{}, len(config.Topics.Precedence))
		for _, name := range config.Topics.Precedence {
			if !domain.IsValidCategory(domain.Category(name)) {
				return fmt.Errorf("unknown category in topic precedence: %s", name)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("duplicate category in topic precedence: %s", name)
			}
			seen[name] = struct{}{}
		}
	}

	if config.Batch.ChunkSize <= 0 || config.Batch.ChunkSize > 500 {
		return fmt.Errorf("batch chunk size must be in [1, 500]: %d", config.Batch.ChunkSize)
	}

	if config.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch concurrency must be positive: %d", config.Batch.Concurrency)
	}

	if config.Batch.Timeout < 0 {
		return fmt.Errorf("batch timeout must be non-negative: %v", config.Batch.Timeout)
	}

	if config.Metrics.Enabled {
		if config.Metrics.Port <= 0 || config.Metrics.Port > 65535 {
			return fmt.Errorf("invalid metrics port: %d", config.Metrics.Port)
		}
		if config.Metrics.UpdateInterval <= 0 {
			return fmt.Errorf("metrics update interval must be positive: %v", config.Metrics.UpdateInterval)
		}
	}

	if config.Logging.ServiceName == "" {
		return fmt.Errorf("logging service name cannot be empty")
	}

	return nil
}

// PrecedenceCategories returns the configured tie-break order, falling
// back to the built-in order when unset.
func (c *TopicsConfig) PrecedenceCategories() []domain.Category {
	if len(c.Precedence) == 0 {
		return domain.Categories()
	}
	out := make([]domain.Category, len(c.Precedence))
	for i, name := range c.Precedence {
		out[i] = domain.Category(name)
	}
	return out
}
