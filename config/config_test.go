package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-analyzer/topic"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Run("should load defaults with no environment set", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 0.3, cfg.Sentiment.StrongThreshold)
		assert.Equal(t, 0.1, cfg.Sentiment.ModerateThreshold)
		assert.Equal(t, 0.7, cfg.Sentiment.ModerateFactor)
		assert.Equal(t, 1.0, cfg.Sentiment.TitleWeight)
		assert.Equal(t, "raw", cfg.Sentiment.Preparer)

		assert.NotEmpty(t, cfg.Relevance.Keywords)
		assert.Equal(t, 10, cfg.Relevance.Saturation)
		assert.Equal(t, 0.1, cfg.Relevance.Threshold)

		assert.Len(t, cfg.Topics.Table, 10)
		assert.Equal(t, topic.DefaultWeights(), cfg.Topics.Weights)
		assert.Equal(t, 1.0, cfg.Topics.TitleWeight)

		assert.Equal(t, 40, cfg.Batch.ChunkSize)
		assert.Equal(t, 4, cfg.Batch.Concurrency)
		assert.Equal(t, time.Duration(0), cfg.Batch.Timeout)

		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, "news-analyzer", cfg.Logging.ServiceName)
	})
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Run("should apply environment overrides", func(t *testing.T) {
		t.Setenv("SENTIMENT_STRONG_THRESHOLD", "0.5")
		t.Setenv("SENTIMENT_MODERATE_THRESHOLD", "0.2")
		t.Setenv("SENTIMENT_PREPARER", "normalized")
		t.Setenv("RELEVANCE_KEYWORDS", "cancer, oncology ,tumor")
		t.Setenv("RELEVANCE_SATURATION", "5")
		t.Setenv("BATCH_CHUNK_SIZE", "25")
		t.Setenv("BATCH_TIMEOUT", "2m")
		t.Setenv("TOPIC_WEIGHT_HIGH", "5")
		t.Setenv("LOG_SERVICE_NAME", "analyzer-test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 0.5, cfg.Sentiment.StrongThreshold)
		assert.Equal(t, 0.2, cfg.Sentiment.ModerateThreshold)
		assert.Equal(t, "normalized", cfg.Sentiment.Preparer)
		assert.Equal(t, []string{"cancer", "oncology", "tumor"}, cfg.Relevance.Keywords)
		assert.Equal(t, 5, cfg.Relevance.Saturation)
		assert.Equal(t, 25, cfg.Batch.ChunkSize)
		assert.Equal(t, 2*time.Minute, cfg.Batch.Timeout)
		assert.Equal(t, 5.0, cfg.Topics.Weights.High)
		assert.Equal(t, "analyzer-test", cfg.Logging.ServiceName)
	})

	t.Run("should reject malformed numeric values", func(t *testing.T) {
		t.Setenv("BATCH_CHUNK_SIZE", "lots")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should reject malformed durations", func(t *testing.T) {
		t.Setenv("BATCH_TIMEOUT", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should apply a custom precedence order", func(t *testing.T) {
		t.Setenv("TOPIC_PRECEDENCE", "research,treatment,surgery,diagnosis,screening,genetics,lifestyle,support,policy,general")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		prec := cfg.Topics.PrecedenceCategories()
		require.Len(t, prec, 10)
		assert.Equal(t, "research", string(prec[0]))
		assert.Equal(t, "treatment", string(prec[1]))
	})
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"inverted sentiment bands", "SENTIMENT_MODERATE_THRESHOLD", "0.9"},
		{"strong threshold above one", "SENTIMENT_STRONG_THRESHOLD", "1.5"},
		{"non-positive title weight", "SENTIMENT_TITLE_WEIGHT", "0"},
		{"unknown preparer", "SENTIMENT_PREPARER", "stemmed"},
		{"zero relevance saturation", "RELEVANCE_SATURATION", "0"},
		{"relevance threshold above one", "RELEVANCE_THRESHOLD", "2"},
		{"zero chunk size", "BATCH_CHUNK_SIZE", "0"},
		{"oversized chunk size", "BATCH_CHUNK_SIZE", "1000"},
		{"zero concurrency", "BATCH_CONCURRENCY", "0"},
		{"negative batch timeout", "BATCH_TIMEOUT", "-1s"},
		{"flat topic weights", "TOPIC_WEIGHT_HIGH", "1"},
		{"incomplete precedence", "TOPIC_PRECEDENCE", "treatment,research"},
		{"unknown precedence category", "TOPIC_PRECEDENCE", "treatment,research,surgery,diagnosis,screening,genetics,lifestyle,support,policy,astrology"},
		{"duplicate precedence category", "TOPIC_PRECEDENCE", "treatment,treatment,surgery,diagnosis,screening,genetics,lifestyle,support,policy,general"},
		{"empty service name via blank only", "LOG_SERVICE_NAME", ""},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Skip("empty env values fall back to defaults")
			}
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}

	t.Run("should reject invalid metrics port only when enabled", func(t *testing.T) {
		t.Setenv("METRICS_PORT", "70000")
		_, err := LoadConfig()
		require.NoError(t, err, "metrics disabled by default")

		t.Setenv("METRICS_ENABLED", "true")
		_, err = LoadConfig()
		assert.Error(t, err)
	})
}

func TestLoadConfig_TableFiles(t *testing.T) {
	t.Run("should load relevance keywords from YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keywords.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - cancer\n  - oncology\n"), 0o600))

		t.Setenv("RELEVANCE_KEYWORDS_FILE", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"cancer", "oncology"}, cfg.Relevance.Keywords)
	})

	t.Run("should load topic table and weights from YAML", func(t *testing.T) {
		content := `
weights:
  high: 4
  medium: 2
  low: 1
categories:
  treatment:
    high: [chemotherapy]
    medium: [therapy]
  research:
    high: [clinical trial]
`
		path := filepath.Join(t.TempDir(), "topics.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv("TOPIC_TABLE_FILE", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 4.0, cfg.Topics.Weights.High)
		require.Contains(t, cfg.Topics.Table, "treatment")
		assert.Equal(t, []string{"chemotherapy"}, cfg.Topics.Table["treatment"].High)
	})

	t.Run("should fail on a missing table file", func(t *testing.T) {
		t.Setenv("TOPIC_TABLE_FILE", "/nonexistent/topics.yaml")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail on an empty keywords file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keywords.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keywords: []\n"), 0o600))

		t.Setenv("RELEVANCE_KEYWORDS_FILE", path)
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail on malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: [not: a: map\n"), 0o600))

		t.Setenv("TOPIC_TABLE_FILE", path)
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
